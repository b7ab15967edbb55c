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

// AdminUserRepository implements admin account operations
type AdminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByUsername gets an active admin account by username
func (r *AdminUserRepository) GetByUsername(ctx context.Context, username string) (*entities.AdminUser, error) {
	var m models.AdminUser
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("username = ? AND is_active = ?", username, true).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByID gets an admin account by ID
func (r *AdminUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error) {
	var m models.AdminUser
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// TouchLastLogin stamps the account's last successful login
func (r *AdminUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

func (r *AdminUserRepository) toEntity(m *models.AdminUser) *entities.AdminUser {
	return &entities.AdminUser{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.AdminRole(m.Role),
		IsActive:     m.IsActive,
		LastLoginAt:  m.LastLoginAt,
		CreatedAt:    m.CreatedAt,
	}
}
