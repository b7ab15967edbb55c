package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// LicenseStatus represents the license lifecycle
type LicenseStatus string

const (
	LicenseActive  LicenseStatus = "active"
	LicenseExpired LicenseStatus = "expired"
	LicenseRevoked LicenseStatus = "revoked"
)

// License represents a time-limited key minted for a successful payment.
// The key itself is the only activation credential.
type License struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"userId"`
	PaymentID    uuid.UUID     `json:"paymentId"`
	PlanID       uuid.UUID     `json:"planId"`
	LicenseKey   string        `json:"licenseKey"`
	Status       LicenseStatus `json:"status"`
	ExpiresAt    time.Time     `json:"expiresAt"`
	ActivatedAt  *time.Time    `json:"activatedAt,omitempty"`
	ReminderSent bool          `json:"reminderSent"`
	CreatedAt    time.Time     `json:"createdAt"`

	User *User        `json:"user,omitempty"`
	Plan *PricingPlan `json:"plan,omitempty"`
}

// DaysRemaining returns the whole days until expiry, rounded up.
// Negative once the license is past its expiry.
func (l *License) DaysRemaining(now time.Time) int {
	return int(math.Ceil(l.ExpiresAt.Sub(now).Hours() / 24))
}

// ActivateLicenseInput is the extension-facing activation payload
type ActivateLicenseInput struct {
	Key           string `json:"key" binding:"required"`
	ExtensionName string `json:"extensionName"`
}

// ActivationResult is returned for a valid key
type ActivationResult struct {
	ExpiresAt     time.Time `json:"expiresAt"`
	DaysRemaining int       `json:"daysRemaining"`
	ActivatedAt   time.Time `json:"activatedAt"`
}
