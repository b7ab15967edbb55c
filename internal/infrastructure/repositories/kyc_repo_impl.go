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

// KYCRepository implements KYC verification data operations
type KYCRepository struct {
	db *gorm.DB
}

// NewKYCRepository creates a new KYC repository
func NewKYCRepository(db *gorm.DB) *KYCRepository {
	return &KYCRepository{db: db}
}

// Create inserts a new verification in pending state
func (r *KYCRepository) Create(ctx context.Context, verification *entities.KYCVerification) error {
	m := &models.KYCVerification{
		ID:           verification.ID,
		UserID:       verification.UserID,
		DocumentType: string(verification.DocumentType),
		FrontImage:   verification.FrontImage,
		BackImage:    strPtr(verification.BackImage),
		Status:       string(entities.KYCReviewPending),
		SubmittedAt:  verification.SubmittedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	verification.ID = m.ID
	verification.Status = entities.KYCReviewPending
	return nil
}

// GetByID gets a verification with its user preloaded
func (r *KYCRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error) {
	var m models.KYCVerification
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetLatestByUserID gets the user's most recent submission
func (r *KYCRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.KYCVerification, error) {
	var m models.KYCVerification
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Resolve writes the review outcome onto a still-pending row
func (r *KYCRepository) Resolve(ctx context.Context, id uuid.UUID, status entities.KYCReviewStatus, declineReason string, reviewedBy uuid.UUID) error {
	updates := map[string]interface{}{
		"status":      string(status),
		"reviewed_by": reviewedBy,
		"reviewed_at": time.Now(),
	}
	if status == entities.KYCReviewDeclined {
		updates["decline_reason"] = declineReason
	}
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.KYCVerification{}).
		Where("id = ? AND status = ?", id, string(entities.KYCReviewPending)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListPending returns pending verifications, oldest first, with users
func (r *KYCRepository) ListPending(ctx context.Context) ([]*entities.KYCVerification, error) {
	var ms []models.KYCVerification
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Preload("User").
		Where("status = ?", string(entities.KYCReviewPending)).
		Order("submitted_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.KYCVerification, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

// CountPending returns the number of pending verifications
func (r *KYCRepository) CountPending(ctx context.Context) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.KYCVerification{}).
		Where("status = ?", string(entities.KYCReviewPending)).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *KYCRepository) toEntity(m *models.KYCVerification) *entities.KYCVerification {
	e := &entities.KYCVerification{
		ID:            m.ID,
		UserID:        m.UserID,
		DocumentType:  entities.DocumentType(m.DocumentType),
		FrontImage:    m.FrontImage,
		BackImage:     nullStr(m.BackImage),
		Status:        entities.KYCReviewStatus(m.Status),
		DeclineReason: nullStr(m.DeclineReason),
		ReviewedBy:    m.ReviewedBy,
		SubmittedAt:   m.SubmittedAt,
		ReviewedAt:    m.ReviewedAt,
	}
	if m.User.ID != uuid.Nil {
		user := (&UserRepository{}).toEntity(&m.User)
		e.User = user
	}
	return e
}
