package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment in pending state
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ID:             payment.ID,
		UserID:         payment.UserID,
		PlanID:         payment.PlanID,
		Method:         string(payment.Method),
		Amount:         payment.Amount,
		DiscountCodeID: payment.DiscountCodeID,
		DiscountAmount: payment.DiscountAmount,
		FinalAmount:    payment.FinalAmount,
		Status:         string(entities.PaymentPending),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.ID = m.ID
	payment.Status = entities.PaymentPending
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a payment with user and plan preloaded
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("User").Preload("Plan").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDForUser gets a payment only when it belongs to the user
func (r *PaymentRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Plan").
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Resolve transitions a pending payment to a terminal status. The pending
// guard is in the WHERE clause; a payment that already left pending is
// reported as ErrPaymentResolved, a missing one as ErrNotFound.
func (r *PaymentRepository) Resolve(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, transactionID, declineReason string, reviewedBy *uuid.UUID) error {
	updates := map[string]interface{}{
		"status": string(status),
	}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}
	if declineReason != "" {
		updates["decline_reason"] = declineReason
	}
	if reviewedBy != nil {
		updates["reviewed_by"] = *reviewedBy
	}

	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, string(entities.PaymentPending)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrPaymentResolved
	}
	return nil
}

// AttachProof stores the uploaded proof filename on the user's own
// pending bank-transfer payment
func (r *PaymentRepository) AttachProof(ctx context.Context, id, userID uuid.UUID, filename string) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, string(entities.PaymentPending)).
		Update("proof_file", filename)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUserID returns the user's payments, newest first
func (r *PaymentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error) {
	var ms []models.Payment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// ListPendingByUserID returns the user's pending payments, newest first
func (r *PaymentRepository) ListPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error) {
	var ms []models.Payment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Plan").
		Where("user_id = ? AND status = ?", userID, string(entities.PaymentPending)).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// List returns payments for the admin surface with pagination
func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Payment
	if err := db.WithContext(ctx).Preload("User").Preload("Plan").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), total, nil
}

// CountPending returns the number of payments awaiting review
func (r *PaymentRepository) CountPending(ctx context.Context) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", string(entities.PaymentPending)).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// SumRevenue totals the final amounts of successful payments
func (r *PaymentRepository) SumRevenue(ctx context.Context) (float64, error) {
	var total float64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", string(entities.PaymentSuccess)).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PaymentRepository) toEntities(ms []models.Payment) []*entities.Payment {
	out := make([]*entities.Payment, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out
}

func (r *PaymentRepository) toEntity(m *models.Payment) *entities.Payment {
	e := &entities.Payment{
		ID:             m.ID,
		UserID:         m.UserID,
		PlanID:         m.PlanID,
		Method:         entities.PaymentMethod(m.Method),
		Amount:         m.Amount,
		DiscountCodeID: m.DiscountCodeID,
		DiscountAmount: m.DiscountAmount,
		FinalAmount:    m.FinalAmount,
		Status:         entities.PaymentStatus(m.Status),
		TransactionID:  nullStr(m.TransactionID),
		ProofFile:      nullStr(m.ProofFile),
		DeclineReason:  nullStr(m.DeclineReason),
		ReviewedBy:     m.ReviewedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.User.ID != uuid.Nil {
		e.User = (&UserRepository{}).toEntity(&m.User)
	}
	if m.Plan.ID != uuid.Nil {
		e.Plan = (&PricingRepository{}).toEntity(&m.Plan)
	}
	return e
}
