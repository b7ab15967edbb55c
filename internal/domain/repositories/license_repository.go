package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"adlicense.backend/internal/domain/entities"
)

// LicenseRepository defines license data operations
type LicenseRepository interface {
	// Create inserts a license row. A duplicate license key surfaces as
	// gorm.ErrDuplicatedKey so callers can regenerate and retry.
	Create(ctx context.Context, license *entities.License) error
	GetByKey(ctx context.Context, key string) (*entities.License, error)
	MarkActivated(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkExpired(ctx context.Context, id uuid.UUID) error
	Revoke(ctx context.Context, id uuid.UUID) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.License, error)
	ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.License, error)
	List(ctx context.Context, limit, offset int) ([]*entities.License, int64, error)
	CountActive(ctx context.Context) (int64, error)

	// ExpireOverdue bulk-transitions active licenses whose expiry has
	// passed and returns how many rows changed.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	// ListExpiringWithin returns active, not-yet-reminded licenses
	// expiring no later than the deadline.
	ListExpiringWithin(ctx context.Context, deadline time.Time) ([]*entities.License, error)
	// MarkReminderSent flips the idempotence guard for the reminder job.
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}
