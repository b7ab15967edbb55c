package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DiscountCode represents a limited-use percentage-off coupon. Codes are
// stored upper-cased; lookups are case-insensitive.
type DiscountCode struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Percentage  float64   `json:"percentage"`
	MaxUses     int       `json:"maxUses"`
	CurrentUses int       `json:"currentUses"`
	ExpiresAt   null.Time `json:"expiresAt,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Usable reports whether the code can still be redeemed at the given time.
func (d *DiscountCode) Usable(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.ExpiresAt.Valid && !d.ExpiresAt.Time.After(now) {
		return false
	}
	return d.CurrentUses < d.MaxUses
}

// RemainingUses returns how many redemptions are left.
func (d *DiscountCode) RemainingUses() int {
	remaining := d.MaxUses - d.CurrentUses
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AmountOff computes the discount for a price, rounded to 2 decimals
// (half away from zero).
func (d *DiscountCode) AmountOff(price float64) float64 {
	return math.Round(price*d.Percentage) / 100
}

// CreateDiscountCodeInput represents the admin code creation payload
type CreateDiscountCodeInput struct {
	Code       string  `json:"code" binding:"required,min=2,max=32"`
	Percentage float64 `json:"discountPercentage" binding:"required,gt=0,lte=100"`
	MaxUses    int     `json:"maxUses" binding:"required,gte=1"`
	ExpiresAt  string  `json:"expiresAt"` // RFC3339, optional
}

// ToggleDiscountCodeInput represents the admin activate/deactivate payload
type ToggleDiscountCodeInput struct {
	CodeID   string `json:"codeId" binding:"required"`
	IsActive *bool  `json:"isActive" binding:"required"`
}

// DiscountValidation is the preview returned to purchasers
type DiscountValidation struct {
	Percentage    float64 `json:"discountPercentage"`
	RemainingUses int     `json:"remainingUses"`
}
