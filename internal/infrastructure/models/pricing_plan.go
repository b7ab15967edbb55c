package models

import (
	"time"

	"github.com/google/uuid"
)

type PricingPlan struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	DurationMonths int       `gorm:"not null"`
	Price          float64   `gorm:"type:decimal(10,2);not null"`
	Description    string    `gorm:"type:text"`
	Features       string    `gorm:"type:jsonb;default:'[]'"` // JSON array of strings
	IsActive       bool      `gorm:"default:true;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
