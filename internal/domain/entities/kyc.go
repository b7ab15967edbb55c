package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentType represents the identity document submitted for KYC
type DocumentType string

const (
	DocumentNIC            DocumentType = "nic"
	DocumentPassport       DocumentType = "passport"
	DocumentDrivingLicense DocumentType = "driving_license"
)

// Valid reports whether the document type is one of the accepted kinds.
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentNIC, DocumentPassport, DocumentDrivingLicense:
		return true
	}
	return false
}

// RequiresBack reports whether the document needs a back-side image.
func (d DocumentType) RequiresBack() bool {
	return d == DocumentNIC
}

// KYCReviewStatus represents the per-submission review state
type KYCReviewStatus string

const (
	KYCReviewPending  KYCReviewStatus = "pending"
	KYCReviewApproved KYCReviewStatus = "approved"
	KYCReviewDeclined KYCReviewStatus = "declined"
)

// KYCVerification represents one document submission. A user has at most
// one active (pending or approved) verification; a declined one is
// superseded by the next submission.
type KYCVerification struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	DocumentType  DocumentType    `json:"documentType"`
	FrontImage    string          `json:"frontImage"`
	BackImage     null.String     `json:"backImage,omitempty"`
	Status        KYCReviewStatus `json:"status"`
	DeclineReason null.String     `json:"declineReason,omitempty"`
	ReviewedBy    *uuid.UUID      `json:"reviewedBy,omitempty"`
	SubmittedAt   time.Time       `json:"submittedAt"`
	ReviewedAt    *time.Time      `json:"reviewedAt,omitempty"`

	User *User `json:"user,omitempty"`
}

// Active reports whether this submission blocks a new one.
func (k *KYCVerification) Active() bool {
	return k.Status == KYCReviewPending || k.Status == KYCReviewApproved
}

// ReviewKYCInput represents the admin review payload
type ReviewKYCInput struct {
	VerificationID string `json:"kycId" binding:"required"`
	Status         string `json:"status" binding:"required,oneof=approved declined"`
	DeclineReason  string `json:"declineReason"`
}
