package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// KYCStatus represents the user-level KYC state
type KYCStatus string

const (
	KYCNotSubmitted KYCStatus = "not_submitted"
	KYCSubmitted    KYCStatus = "submitted"
	KYCVerified     KYCStatus = "verified"
	KYCDeclined     KYCStatus = "declined"
)

// Gender values accepted on profile completion
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User represents a registered customer. UID is the 6-digit human-facing
// identifier, distinct from the internal row ID. GoogleSub is the subject
// claim of the external identity provider.
type User struct {
	ID               uuid.UUID   `json:"id"`
	UID              string      `json:"uid"`
	GoogleSub        string      `json:"-"`
	Email            string      `json:"email"`
	EmailVerified    bool        `json:"emailVerified"`
	FirstName        null.String `json:"firstName,omitempty"`
	MiddleName       null.String `json:"middleName,omitempty"`
	LastName         null.String `json:"lastName,omitempty"`
	Address          null.String `json:"address,omitempty"`
	Phone            null.String `json:"phone,omitempty"`
	DateOfBirth      null.Time   `json:"dateOfBirth,omitempty"`
	Gender           null.String `json:"gender,omitempty"`
	ProfileCompleted bool        `json:"profileCompleted"`
	KYCStatus        KYCStatus   `json:"kycStatus"`
	KYCDeclineReason null.String `json:"kycDeclineReason,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// FullName joins the profile name parts, skipping unset ones.
func (u *User) FullName() string {
	name := ""
	for _, part := range []null.String{u.FirstName, u.MiddleName, u.LastName} {
		if part.Valid && part.String != "" {
			if name != "" {
				name += " "
			}
			name += part.String
		}
	}
	return name
}

// CompleteProfileInput represents the one-time profile completion payload
type CompleteProfileInput struct {
	FirstName   string `json:"firstName" binding:"required,min=1,max=100"`
	MiddleName  string `json:"middleName" binding:"max=100"`
	LastName    string `json:"lastName" binding:"required,min=1,max=100"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"` // YYYY-MM-DD
	Gender      string `json:"gender" binding:"required,oneof=male female other"`
}

// GoogleSignInInput carries the externally-issued identity token
type GoogleSignInInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

// AuthResponse represents a successful identity exchange
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Dashboard aggregates the data shown on the user landing page
type Dashboard struct {
	User            *User      `json:"user"`
	ActiveLicenses  []*License `json:"activeLicenses"`
	PendingPayments []*Payment `json:"pendingPayments"`
}
