package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/infrastructure/models"
)

// LicenseRepository implements license data operations
type LicenseRepository struct {
	db *gorm.DB
}

// NewLicenseRepository creates a new license repository
func NewLicenseRepository(db *gorm.DB) *LicenseRepository {
	return &LicenseRepository{db: db}
}

// Create inserts a license row. The license_key column is unique; a
// duplicate surfaces as gorm.ErrDuplicatedKey so callers can regenerate
// the key and retry.
func (r *LicenseRepository) Create(ctx context.Context, license *entities.License) error {
	m := &models.License{
		ID:         license.ID,
		UserID:     license.UserID,
		PaymentID:  license.PaymentID,
		PlanID:     license.PlanID,
		LicenseKey: license.LicenseKey,
		Status:     string(entities.LicenseActive),
		ExpiresAt:  license.ExpiresAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	license.ID = m.ID
	license.Status = entities.LicenseActive
	license.CreatedAt = m.CreatedAt
	return nil
}

// GetByKey gets a license by its key, with user and plan preloaded
func (r *LicenseRepository) GetByKey(ctx context.Context, key string) (*entities.License, error) {
	var m models.License
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("User").Preload("Plan").
		Where("license_key = ?", key).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// MarkActivated stamps the first activation. Later activations leave the
// original timestamp untouched.
func (r *LicenseRepository) MarkActivated(ctx context.Context, id uuid.UUID, at time.Time) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.License{}).
		Where("id = ? AND activated_at IS NULL", id).
		Update("activated_at", at).Error
}

// MarkExpired transitions a single license to expired
func (r *LicenseRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.License{}).
		Where("id = ? AND status = ?", id, string(entities.LicenseActive)).
		Update("status", string(entities.LicenseExpired))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Revoke transitions an active license to revoked
func (r *LicenseRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.License{}).
		Where("id = ? AND status = ?", id, string(entities.LicenseActive)).
		Update("status", string(entities.LicenseRevoked))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUserID returns all of a user's licenses, newest first
func (r *LicenseRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.License, error) {
	var ms []models.License
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// ListActiveByUserID returns the user's active licenses, newest first
func (r *LicenseRepository) ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.License, error) {
	var ms []models.License
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Plan").
		Where("user_id = ? AND status = ?", userID, string(entities.LicenseActive)).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// List returns licenses for the admin surface with pagination
func (r *LicenseRepository) List(ctx context.Context, limit, offset int) ([]*entities.License, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.License{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.License
	if err := db.WithContext(ctx).Preload("User").Preload("Plan").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), total, nil
}

// CountActive returns the number of active licenses
func (r *LicenseRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.License{}).
		Where("status = ?", string(entities.LicenseActive)).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ExpireOverdue flips every overdue active license in one statement
func (r *LicenseRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.License{}).
		Where("status = ? AND expires_at < ?", string(entities.LicenseActive), now).
		Update("status", string(entities.LicenseExpired))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ListExpiringWithin returns active, not-yet-reminded licenses expiring
// no later than the deadline, with users preloaded for notification
func (r *LicenseRepository) ListExpiringWithin(ctx context.Context, deadline time.Time) ([]*entities.License, error) {
	var ms []models.License
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("User").Preload("Plan").
		Where("status = ? AND reminder_sent = ? AND expires_at <= ?",
			string(entities.LicenseActive), false, deadline).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// MarkReminderSent flips the reminder guard
func (r *LicenseRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.License{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}

func (r *LicenseRepository) toEntities(ms []models.License) []*entities.License {
	out := make([]*entities.License, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out
}

func (r *LicenseRepository) toEntity(m *models.License) *entities.License {
	e := &entities.License{
		ID:           m.ID,
		UserID:       m.UserID,
		PaymentID:    m.PaymentID,
		PlanID:       m.PlanID,
		LicenseKey:   m.LicenseKey,
		Status:       entities.LicenseStatus(m.Status),
		ExpiresAt:    m.ExpiresAt,
		ActivatedAt:  m.ActivatedAt,
		ReminderSent: m.ReminderSent,
		CreatedAt:    m.CreatedAt,
	}
	if m.User.ID != uuid.Nil {
		e.User = (&UserRepository{}).toEntity(&m.User)
	}
	if m.Plan.ID != uuid.Nil {
		e.Plan = (&PricingRepository{}).toEntity(&m.Plan)
	}
	return e
}
