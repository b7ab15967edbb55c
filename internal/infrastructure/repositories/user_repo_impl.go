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

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A UID or email collision surfaces as
// gorm.ErrDuplicatedKey so the caller can regenerate the UID and retry.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := r.toModel(user)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by internal ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByGoogleSub gets a user by the identity provider subject claim
func (r *UserRepository) GetByGoogleSub(ctx context.Context, sub string) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("google_sub = ?", sub).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// CompleteProfile writes the profile fields and flips profile_completed.
// It only touches a row whose profile is still incomplete; a completed
// profile yields ErrProfileLocked.
func (r *UserRepository) CompleteProfile(ctx context.Context, user *entities.User) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND profile_completed = ?", user.ID, false).
		Updates(map[string]interface{}{
			"first_name":        strPtr(user.FirstName),
			"middle_name":       strPtr(user.MiddleName),
			"last_name":         strPtr(user.LastName),
			"address":           strPtr(user.Address),
			"phone":             strPtr(user.Phone),
			"date_of_birth":     timePtr(user.DateOfBirth),
			"gender":            strPtr(user.Gender),
			"profile_completed": true,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrProfileLocked
	}
	return nil
}

// MarkEmailVerified flips the email verification flag
func (r *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("email_verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetKYCStatus syncs the user-level KYC state after a submission or review
func (r *UserRepository) SetKYCStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus, declineReason string) error {
	updates := map[string]interface{}{
		"kyc_status": string(status),
	}
	if status == entities.KYCDeclined {
		updates["kyc_decline_reason"] = declineReason
	} else {
		updates["kyc_decline_reason"] = nil
	}
	db := GetDB(ctx, r.db)
	res := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns all users, newest first
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	var ms []models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, r.toEntity(&ms[i]))
	}
	return users, nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *UserRepository) toModel(u *entities.User) *models.User {
	return &models.User{
		ID:               u.ID,
		UID:              u.UID,
		GoogleSub:        u.GoogleSub,
		Email:            u.Email,
		EmailVerified:    u.EmailVerified,
		FirstName:        strPtr(u.FirstName),
		MiddleName:       strPtr(u.MiddleName),
		LastName:         strPtr(u.LastName),
		Address:          strPtr(u.Address),
		Phone:            strPtr(u.Phone),
		DateOfBirth:      timePtr(u.DateOfBirth),
		Gender:           strPtr(u.Gender),
		ProfileCompleted: u.ProfileCompleted,
		KYCStatus:        string(u.KYCStatus),
		KYCDeclineReason: strPtr(u.KYCDeclineReason),
	}
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:               m.ID,
		UID:              m.UID,
		GoogleSub:        m.GoogleSub,
		Email:            m.Email,
		EmailVerified:    m.EmailVerified,
		FirstName:        nullStr(m.FirstName),
		MiddleName:       nullStr(m.MiddleName),
		LastName:         nullStr(m.LastName),
		Address:          nullStr(m.Address),
		Phone:            nullStr(m.Phone),
		DateOfBirth:      nullTime(m.DateOfBirth),
		Gender:           nullStr(m.Gender),
		ProfileCompleted: m.ProfileCompleted,
		KYCStatus:        entities.KYCStatus(m.KYCStatus),
		KYCDeclineReason: nullStr(m.KYCDeclineReason),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
