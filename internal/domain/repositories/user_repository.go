package repositories

import (
	"context"

	"github.com/google/uuid"
	"adlicense.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*entities.User, error)
	CompleteProfile(ctx context.Context, user *entities.User) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	SetKYCStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus, declineReason string) error
	List(ctx context.Context, limit, offset int) ([]*entities.User, error)
	Count(ctx context.Context) (int64, error)
}

// AdminUserRepository defines admin account operations
type AdminUserRepository interface {
	GetByUsername(ctx context.Context, username string) (*entities.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}
