package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrProfileIncomplete  = errors.New("profile not completed")
	ErrProfileLocked      = errors.New("profile already completed")
	ErrKYCNotVerified     = errors.New("kyc not verified")
	ErrKYCAlreadyActive   = errors.New("kyc already submitted or approved")
	ErrInvalidDiscount    = errors.New("invalid or expired discount code")
	ErrPaymentResolved    = errors.New("payment already resolved")
	ErrLicenseExpired     = errors.New("license expired")
	ErrLicenseRevoked     = errors.New("license revoked")
	ErrGatewayDisabled    = errors.New("online gateway disabled")
)

// AppError represents an application error with an HTTP status and an
// optional machine-readable reason flag surfaced to clients.
type AppError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Flag    string `json:"flag,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// Precondition builds a 403 carrying a machine-readable flag so the
// frontend can route the user to the missing step.
func Precondition(message, flag string, err error) *AppError {
	return &AppError{
		Status:  http.StatusForbidden,
		Message: message,
		Flag:    flag,
		Err:     err,
	}
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
