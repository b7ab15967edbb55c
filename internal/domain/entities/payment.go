package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents the payment state machine. Pending is the only
// non-terminal state.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentSuccess  PaymentStatus = "success"
	PaymentFailed   PaymentStatus = "failed"
	PaymentDeclined PaymentStatus = "declined"
)

// Terminal reports whether the status permits no further transition.
func (s PaymentStatus) Terminal() bool {
	return s != PaymentPending
}

// PaymentMethod represents how the user pays
type PaymentMethod string

const (
	MethodOnline       PaymentMethod = "online"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// Payment represents a purchase attempt for a pricing plan.
// FinalAmount is always Amount minus DiscountAmount.
type Payment struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"userId"`
	PlanID         uuid.UUID     `json:"planId"`
	Method         PaymentMethod `json:"paymentMethod"`
	Amount         float64       `json:"amount"`
	DiscountCodeID *uuid.UUID    `json:"discountCodeId,omitempty"`
	DiscountAmount float64       `json:"discountAmount"`
	FinalAmount    float64       `json:"finalAmount"`
	Status         PaymentStatus `json:"status"`
	TransactionID  null.String   `json:"transactionId,omitempty"`
	ProofFile      null.String   `json:"paymentProof,omitempty"`
	DeclineReason  null.String   `json:"declineReason,omitempty"`
	ReviewedBy     *uuid.UUID    `json:"reviewedBy,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	User *User        `json:"user,omitempty"`
	Plan *PricingPlan `json:"plan,omitempty"`
}

// CreatePaymentInput represents the purchase payload
type CreatePaymentInput struct {
	PlanID       string `json:"planId" binding:"required"`
	Method       string `json:"paymentMethod" binding:"required,oneof=online bank_transfer"`
	DiscountCode string `json:"discountCode"`
}

// CreatePaymentResponse is returned on payment creation
type CreatePaymentResponse struct {
	PaymentID      uuid.UUID     `json:"paymentId"`
	Amount         float64       `json:"amount"`
	DiscountAmount float64       `json:"discountAmount"`
	FinalAmount    float64       `json:"finalAmount"`
	Method         PaymentMethod `json:"paymentMethod"`
	Status         PaymentStatus `json:"status"`
}

// ProcessOnlineInput represents the demo gateway payload
type ProcessOnlineInput struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

// ReviewPaymentInput represents the admin payment review payload
type ReviewPaymentInput struct {
	PaymentID     string `json:"paymentId" binding:"required"`
	Status        string `json:"status" binding:"required,oneof=success failed declined"`
	DeclineReason string `json:"declineReason"`
}
