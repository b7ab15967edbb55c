package repositories

import (
	"context"

	"github.com/google/uuid"
	"adlicense.backend/internal/domain/entities"
)

// KYCRepository defines KYC verification data operations
type KYCRepository interface {
	Create(ctx context.Context, verification *entities.KYCVerification) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error)
	// GetLatestByUserID returns the most recently submitted verification
	// for the user, or ErrNotFound when none exists.
	GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.KYCVerification, error)
	// Resolve writes the terminal review outcome. It updates only a row
	// that is still pending; a resolved or missing row yields ErrNotFound.
	Resolve(ctx context.Context, id uuid.UUID, status entities.KYCReviewStatus, declineReason string, reviewedBy uuid.UUID) error
	ListPending(ctx context.Context) ([]*entities.KYCVerification, error)
	CountPending(ctx context.Context) (int64, error)
}
