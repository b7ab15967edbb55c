package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/infrastructure/models"
)

// DiscountRepository implements discount code data operations
type DiscountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

// Create inserts a new code. The code column is unique; a collision
// surfaces as gorm.ErrDuplicatedKey.
func (r *DiscountRepository) Create(ctx context.Context, code *entities.DiscountCode) error {
	m := &models.DiscountCode{
		ID:         code.ID,
		Code:       strings.ToUpper(code.Code),
		Percentage: code.Percentage,
		MaxUses:    code.MaxUses,
		ExpiresAt:  timePtr(code.ExpiresAt),
		IsActive:   code.IsActive,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	code.ID = m.ID
	code.Code = m.Code
	code.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets a code by ID
func (r *DiscountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.DiscountCode, error) {
	var m models.DiscountCode
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByCode looks up a code case-insensitively
func (r *DiscountRepository) GetByCode(ctx context.Context, code string) (*entities.DiscountCode, error) {
	var m models.DiscountCode
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Consume increments current_uses with the usability conditions in the
// WHERE clause, so two concurrent redemptions of the last use cannot
// both succeed.
func (r *DiscountRepository) Consume(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.DiscountCode{}).
		Where("id = ? AND is_active = ? AND current_uses < max_uses AND (expires_at IS NULL OR expires_at > ?)",
			id, true, time.Now()).
		Update("current_uses", gorm.Expr("current_uses + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrInvalidDiscount
	}
	return nil
}

// List returns all codes, newest first
func (r *DiscountRepository) List(ctx context.Context) ([]*entities.DiscountCode, error) {
	var ms []models.DiscountCode
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	codes := make([]*entities.DiscountCode, 0, len(ms))
	for i := range ms {
		codes = append(codes, r.toEntity(&ms[i]))
	}
	return codes, nil
}

// SetActive toggles the code on or off
func (r *DiscountRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.DiscountCode{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *DiscountRepository) toEntity(m *models.DiscountCode) *entities.DiscountCode {
	return &entities.DiscountCode{
		ID:          m.ID,
		Code:        m.Code,
		Percentage:  m.Percentage,
		MaxUses:     m.MaxUses,
		CurrentUses: m.CurrentUses,
		ExpiresAt:   nullTime(m.ExpiresAt),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}
