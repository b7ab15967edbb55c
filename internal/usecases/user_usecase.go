package usecases

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/domain/repositories"
)

// UserUsecase handles profile and dashboard logic
type UserUsecase struct {
	userRepo    repositories.UserRepository
	licenseRepo repositories.LicenseRepository
	paymentRepo repositories.PaymentRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(
	userRepo repositories.UserRepository,
	licenseRepo repositories.LicenseRepository,
	paymentRepo repositories.PaymentRepository,
) *UserUsecase {
	return &UserUsecase{
		userRepo:    userRepo,
		licenseRepo: licenseRepo,
		paymentRepo: paymentRepo,
	}
}

// GetProfile returns the user's own record
func (u *UserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// CompleteProfile fills in the one-time profile. A completed profile is
// immutable; a second call fails.
func (u *UserUsecase) CompleteProfile(ctx context.Context, userID uuid.UUID, input *entities.CompleteProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ProfileCompleted {
		return nil, domainerrors.NewAppError(http.StatusConflict, "profile already completed", domainerrors.ErrProfileLocked)
	}

	dob, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		return nil, domainerrors.BadRequest("dateOfBirth must be YYYY-MM-DD")
	}
	if !dob.Before(time.Now()) {
		return nil, domainerrors.BadRequest("dateOfBirth must be in the past")
	}

	user.FirstName = null.StringFrom(input.FirstName)
	user.MiddleName = optionalString(input.MiddleName)
	user.LastName = null.StringFrom(input.LastName)
	user.Address = null.StringFrom(input.Address)
	user.Phone = null.StringFrom(input.Phone)
	user.DateOfBirth = null.TimeFrom(dob)
	user.Gender = null.StringFrom(input.Gender)

	if err := u.userRepo.CompleteProfile(ctx, user); err != nil {
		if err == domainerrors.ErrProfileLocked {
			return nil, domainerrors.NewAppError(http.StatusConflict, "profile already completed", err)
		}
		return nil, err
	}

	return u.userRepo.GetByID(ctx, userID)
}

// GetDashboard aggregates the landing page data
func (u *UserUsecase) GetDashboard(ctx context.Context, userID uuid.UUID) (*entities.Dashboard, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	licenses, err := u.licenseRepo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := u.paymentRepo.ListPendingByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entities.Dashboard{
		User:            user,
		ActiveLicenses:  licenses,
		PendingPayments: pending,
	}, nil
}

func optionalString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
