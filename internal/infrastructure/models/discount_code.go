package models

import (
	"time"

	"github.com/google/uuid"
)

type DiscountCode struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Code        string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Percentage  float64   `gorm:"type:decimal(5,2);not null"`
	MaxUses     int       `gorm:"not null"`
	CurrentUses int       `gorm:"default:0;not null"`
	ExpiresAt   *time.Time
	IsActive    bool `gorm:"default:true;not null"`
	CreatedAt   time.Time
}
