package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UID              string    `gorm:"type:varchar(6);uniqueIndex;not null"`
	GoogleSub        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	EmailVerified    bool      `gorm:"default:false;not null"`
	FirstName        *string   `gorm:"type:varchar(100)"`
	MiddleName       *string   `gorm:"type:varchar(100)"`
	LastName         *string   `gorm:"type:varchar(100)"`
	Address          *string   `gorm:"type:text"`
	Phone            *string   `gorm:"type:varchar(30)"`
	DateOfBirth      *time.Time
	Gender           *string `gorm:"type:varchar(10)"`
	ProfileCompleted bool    `gorm:"default:false;not null"`
	KYCStatus        string  `gorm:"type:varchar(20);not null;default:'not_submitted';column:kyc_status"`
	KYCDeclineReason *string `gorm:"type:text;column:kyc_decline_reason"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
