package repositories

import (
	"context"

	"github.com/google/uuid"
	"adlicense.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Payment, error)
	// Resolve transitions a pending payment into a terminal status.
	// A payment that already left pending yields ErrPaymentResolved.
	Resolve(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, transactionID, declineReason string, reviewedBy *uuid.UUID) error
	AttachProof(ctx context.Context, id, userID uuid.UUID, filename string) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error)
	ListPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error)
	CountPending(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
}
