package repositories

import (
	"context"

	"github.com/google/uuid"
	"adlicense.backend/internal/domain/entities"
)

// PricingRepository defines pricing plan data operations
type PricingRepository interface {
	ListActive(ctx context.Context) ([]*entities.PricingPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PricingPlan, error)
	// GetActiveByID returns the plan only when it is active.
	GetActiveByID(ctx context.Context, id uuid.UUID) (*entities.PricingPlan, error)
	Update(ctx context.Context, plan *entities.PricingPlan) error
}

// DiscountRepository defines discount code data operations
type DiscountRepository interface {
	Create(ctx context.Context, code *entities.DiscountCode) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.DiscountCode, error)
	// GetByCode looks a code up case-insensitively.
	GetByCode(ctx context.Context, code string) (*entities.DiscountCode, error)
	// Consume atomically increments current_uses, guarded by
	// current_uses < max_uses, activity and expiry. Returns
	// ErrInvalidDiscount when no row qualified.
	Consume(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entities.DiscountCode, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
