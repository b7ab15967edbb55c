package notifications

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"adlicense.backend/pkg/logger"
)

// Notifier fans user email and admin telegram alerts out from the
// business flows. Delivery is best effort: failures are logged and never
// fail the triggering operation.
type Notifier struct {
	mailer   *Mailer
	telegram *TelegramClient
}

// NewNotifier creates a new notifier
func NewNotifier(mailer *Mailer, telegram *TelegramClient) *Notifier {
	return &Notifier{mailer: mailer, telegram: telegram}
}

// Welcome greets a new user and pings the admin chat
func (n *Notifier) Welcome(ctx context.Context, email, name, uid string) {
	if err := n.mailer.SendWelcome(email, name, uid); err != nil {
		logger.Warn(ctx, "welcome email failed", zap.String("email", email), zap.Error(err))
	}
	n.alert(ctx, fmt.Sprintf("New registration: %s (UID %s)", email, uid))
}

// LicenseIssued delivers the key to the purchaser
func (n *Notifier) LicenseIssued(ctx context.Context, email, name, key string, expiresAt time.Time) {
	if err := n.mailer.SendLicenseKey(email, name, key, expiresAt); err != nil {
		logger.Warn(ctx, "license email failed", zap.String("email", email), zap.Error(err))
	}
}

// PaymentFailed tells the purchaser their payment did not go through
func (n *Notifier) PaymentFailed(ctx context.Context, email, name, reason string) {
	if err := n.mailer.SendPaymentFailed(email, name, reason); err != nil {
		logger.Warn(ctx, "payment email failed", zap.String("email", email), zap.Error(err))
	}
}

// PaymentSubmitted alerts reviewers that a payment awaits them
func (n *Notifier) PaymentSubmitted(ctx context.Context, email string, amount float64) {
	n.alert(ctx, fmt.Sprintf("Payment awaiting review: %s, %.2f", email, amount))
}

// KYCSubmitted alerts reviewers that documents await them
func (n *Notifier) KYCSubmitted(ctx context.Context, email string) {
	n.alert(ctx, fmt.Sprintf("KYC submission awaiting review: %s", email))
}

// KYCReviewed reports the review outcome to the user
func (n *Notifier) KYCReviewed(ctx context.Context, email, name string, approved bool, reason string) {
	if err := n.mailer.SendKYCResult(email, name, approved, reason); err != nil {
		logger.Warn(ctx, "kyc email failed", zap.String("email", email), zap.Error(err))
	}
}

// ExpiryReminder warns a user their license lapses soon
func (n *Notifier) ExpiryReminder(ctx context.Context, email, name, key string, expiresAt time.Time, daysLeft int) {
	if err := n.mailer.SendExpiryReminder(email, name, key, expiresAt, daysLeft); err != nil {
		logger.Warn(ctx, "reminder email failed", zap.String("email", email), zap.Error(err))
	}
}

func (n *Notifier) alert(ctx context.Context, text string) {
	if err := n.telegram.SendMessage(ctx, text); err != nil {
		logger.Warn(ctx, "telegram alert failed", zap.Error(err))
	}
}
