package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/infrastructure/models"
)

// PricingRepository implements pricing plan data operations
type PricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository creates a new pricing repository
func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// ListActive returns active plans ordered by duration
func (r *PricingRepository) ListActive(ctx context.Context) ([]*entities.PricingPlan, error) {
	var ms []models.PricingPlan
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("duration_months ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	plans := make([]*entities.PricingPlan, 0, len(ms))
	for i := range ms {
		plans = append(plans, r.toEntity(&ms[i]))
	}
	return plans, nil
}

// GetByID gets a plan regardless of active state
func (r *PricingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PricingPlan, error) {
	var m models.PricingPlan
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetActiveByID gets a plan only when it is purchasable
func (r *PricingRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*entities.PricingPlan, error) {
	var m models.PricingPlan
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists plan changes
func (r *PricingRepository) Update(ctx context.Context, plan *entities.PricingPlan) error {
	features, err := json.Marshal(plan.Features)
	if err != nil {
		return err
	}
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.PricingPlan{}).
		Where("id = ?", plan.ID).
		Updates(map[string]interface{}{
			"price":       plan.Price,
			"description": plan.Description,
			"features":    string(features),
			"is_active":   plan.IsActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *PricingRepository) toEntity(m *models.PricingPlan) *entities.PricingPlan {
	var features []string
	if m.Features != "" {
		// A malformed column falls back to an empty list rather than
		// failing the whole read.
		_ = json.Unmarshal([]byte(m.Features), &features)
	}
	return &entities.PricingPlan{
		ID:             m.ID,
		DurationMonths: m.DurationMonths,
		Price:          m.Price,
		Description:    m.Description,
		Features:       features,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
