package models

import (
	"time"

	"github.com/google/uuid"
)

type License struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PlanID       uuid.UUID `gorm:"type:uuid;not null"`
	LicenseKey   string    `gorm:"type:varchar(19);uniqueIndex;not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active';index"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	ActivatedAt  *time.Time
	ReminderSent bool `gorm:"default:false;not null"`
	CreatedAt    time.Time

	User User        `gorm:"foreignKey:UserID"`
	Plan PricingPlan `gorm:"foreignKey:PlanID"`
}
