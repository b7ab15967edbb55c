package models

import (
	"time"

	"github.com/google/uuid"
)

type KYCVerification struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentType  string    `gorm:"type:varchar(50);not null"`
	FrontImage    string    `gorm:"type:varchar(255);not null"`
	BackImage     *string   `gorm:"type:varchar(255)"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	DeclineReason *string   `gorm:"type:text"`
	ReviewedBy    *uuid.UUID `gorm:"type:uuid"`
	SubmittedAt   time.Time `gorm:"not null"`
	ReviewedAt    *time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (KYCVerification) TableName() string {
	return "kyc_verifications"
}
