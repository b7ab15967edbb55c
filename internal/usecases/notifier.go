package usecases

import (
	"context"
	"time"
)

// Notifier delivers user email and admin alerts. Implementations are
// best effort; calls never fail the business operation that triggered
// them.
type Notifier interface {
	Welcome(ctx context.Context, email, name, uid string)
	LicenseIssued(ctx context.Context, email, name, key string, expiresAt time.Time)
	PaymentFailed(ctx context.Context, email, name, reason string)
	PaymentSubmitted(ctx context.Context, email string, amount float64)
	KYCSubmitted(ctx context.Context, email string)
	KYCReviewed(ctx context.Context, email, name string, approved bool, reason string)
	ExpiryReminder(ctx context.Context, email, name, key string, expiresAt time.Time, daysLeft int)
}
