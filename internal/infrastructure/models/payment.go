package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanID         uuid.UUID  `gorm:"type:uuid;not null"`
	Method         string     `gorm:"type:varchar(20);not null"`
	Amount         float64    `gorm:"type:decimal(10,2);not null"`
	DiscountCodeID *uuid.UUID `gorm:"type:uuid"`
	DiscountAmount float64    `gorm:"type:decimal(10,2);default:0;not null"`
	FinalAmount    float64    `gorm:"type:decimal(10,2);not null"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	TransactionID  *string    `gorm:"type:varchar(100)"`
	ProofFile      *string    `gorm:"type:varchar(255)"`
	DeclineReason  *string    `gorm:"type:text"`
	ReviewedBy     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User User        `gorm:"foreignKey:UserID"`
	Plan PricingPlan `gorm:"foreignKey:PlanID"`
}
