package entities

import (
	"time"

	"github.com/google/uuid"
)

// PricingPlan represents a purchasable license duration
type PricingPlan struct {
	ID             uuid.UUID `json:"id"`
	DurationMonths int       `json:"durationMonths"`
	Price          float64   `json:"price"`
	Description    string    `json:"description"`
	Features       []string  `json:"features"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UpdatePricingPlanInput represents the admin plan update payload
type UpdatePricingPlanInput struct {
	PlanID      string   `json:"planId" binding:"required"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Description *string  `json:"description"`
	Features    []string `json:"features"`
	IsActive    *bool    `json:"isActive"`
}

// CalculatePriceInput represents the public price preview payload
type CalculatePriceInput struct {
	PlanID       string `json:"planId" binding:"required"`
	DiscountCode string `json:"discountCode"`
}

// PriceCalculation is the result of a price preview
type PriceCalculation struct {
	PlanID         uuid.UUID `json:"planId"`
	DurationMonths int       `json:"durationMonths"`
	OriginalPrice  float64   `json:"originalPrice"`
	DiscountAmount float64   `json:"discountAmount"`
	FinalPrice     float64   `json:"finalPrice"`
	DiscountCode   string    `json:"discountCode,omitempty"`
}
