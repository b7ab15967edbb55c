package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/domain/repositories"
)

// PricingUsecase handles plans and discount codes
type PricingUsecase struct {
	pricingRepo  repositories.PricingRepository
	discountRepo repositories.DiscountRepository
}

// NewPricingUsecase creates a new pricing usecase
func NewPricingUsecase(
	pricingRepo repositories.PricingRepository,
	discountRepo repositories.DiscountRepository,
) *PricingUsecase {
	return &PricingUsecase{
		pricingRepo:  pricingRepo,
		discountRepo: discountRepo,
	}
}

// ListPlans returns the purchasable plans
func (u *PricingUsecase) ListPlans(ctx context.Context) ([]*entities.PricingPlan, error) {
	return u.pricingRepo.ListActive(ctx)
}

// GetPlan returns a single active plan
func (u *PricingUsecase) GetPlan(ctx context.Context, id string) (*entities.PricingPlan, error) {
	planID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid plan id")
	}

	plan, err := u.pricingRepo.GetActiveByID(ctx, planID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("pricing plan not found")
		}
		return nil, err
	}
	return plan, nil
}

// CalculatePrice previews the final price for a plan, optionally with a
// discount code. Nothing is consumed here.
func (u *PricingUsecase) CalculatePrice(ctx context.Context, input *entities.CalculatePriceInput) (*entities.PriceCalculation, error) {
	planID, err := uuid.Parse(input.PlanID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid plan id")
	}

	plan, err := u.pricingRepo.GetActiveByID(ctx, planID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("pricing plan not found")
		}
		return nil, err
	}

	calc := &entities.PriceCalculation{
		PlanID:         plan.ID,
		DurationMonths: plan.DurationMonths,
		OriginalPrice:  plan.Price,
		FinalPrice:     plan.Price,
	}

	if input.DiscountCode != "" {
		discount, err := u.usableDiscount(ctx, input.DiscountCode)
		if err != nil {
			return nil, err
		}
		calc.DiscountCode = discount.Code
		calc.DiscountAmount = discount.AmountOff(plan.Price)
		calc.FinalPrice = plan.Price - calc.DiscountAmount
	}

	return calc, nil
}

// ValidateDiscount previews a discount code for the purchase form
func (u *PricingUsecase) ValidateDiscount(ctx context.Context, code string) (*entities.DiscountValidation, error) {
	discount, err := u.usableDiscount(ctx, code)
	if err != nil {
		return nil, err
	}
	return &entities.DiscountValidation{
		Percentage:    discount.Percentage,
		RemainingUses: discount.RemainingUses(),
	}, nil
}

func (u *PricingUsecase) usableDiscount(ctx context.Context, code string) (*entities.DiscountCode, error) {
	discount, err := u.discountRepo.GetByCode(ctx, code)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.BadRequest("invalid or expired discount code")
		}
		return nil, err
	}
	if !discount.Usable(time.Now()) {
		return nil, domainerrors.BadRequest("invalid or expired discount code")
	}
	return discount, nil
}

// UpdatePlan applies a partial admin edit to a plan
func (u *PricingUsecase) UpdatePlan(ctx context.Context, input *entities.UpdatePricingPlanInput) (*entities.PricingPlan, error) {
	planID, err := uuid.Parse(input.PlanID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid plan id")
	}

	plan, err := u.pricingRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if input.Price != nil {
		plan.Price = *input.Price
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.Features != nil {
		plan.Features = input.Features
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := u.pricingRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return u.pricingRepo.GetByID(ctx, planID)
}

// CreateDiscount registers a new code
func (u *PricingUsecase) CreateDiscount(ctx context.Context, input *entities.CreateDiscountCodeInput) (*entities.DiscountCode, error) {
	discount := &entities.DiscountCode{
		Code:       input.Code,
		Percentage: input.Percentage,
		MaxUses:    input.MaxUses,
		IsActive:   true,
	}

	if input.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, input.ExpiresAt)
		if err != nil {
			return nil, domainerrors.BadRequest("expiresAt must be RFC3339")
		}
		if !expiresAt.After(time.Now()) {
			return nil, domainerrors.BadRequest("expiresAt must be in the future")
		}
		discount.ExpiresAt = null.TimeFrom(expiresAt)
	}

	if err := u.discountRepo.Create(ctx, discount); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, domainerrors.BadRequest("a code with this name already exists")
		}
		return nil, err
	}
	return discount, nil
}

// ListDiscounts returns all codes for the admin surface
func (u *PricingUsecase) ListDiscounts(ctx context.Context) ([]*entities.DiscountCode, error) {
	return u.discountRepo.List(ctx)
}

// ToggleDiscount activates or deactivates a code
func (u *PricingUsecase) ToggleDiscount(ctx context.Context, input *entities.ToggleDiscountCodeInput) (*entities.DiscountCode, error) {
	codeID, err := uuid.Parse(input.CodeID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid code id")
	}

	if err := u.discountRepo.SetActive(ctx, codeID, *input.IsActive); err != nil {
		return nil, err
	}
	return u.discountRepo.GetByID(ctx, codeID)
}
