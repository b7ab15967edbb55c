package usecases

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/domain/repositories"
)

// LicenseUsecase handles license activation and admin management
type LicenseUsecase struct {
	licenseRepo repositories.LicenseRepository
}

// NewLicenseUsecase creates a new license usecase
func NewLicenseUsecase(licenseRepo repositories.LicenseRepository) *LicenseUsecase {
	return &LicenseUsecase{licenseRepo: licenseRepo}
}

// Activate validates a key for the browser extension. The first successful
// activation stamps ActivatedAt; later calls keep the original stamp. A key
// whose expiry has passed is flipped to expired on the spot rather than
// waiting for the sweep.
func (u *LicenseUsecase) Activate(ctx context.Context, input *entities.ActivateLicenseInput) (*entities.ActivationResult, error) {
	key := strings.ToUpper(strings.TrimSpace(input.Key))

	license, err := u.licenseRepo.GetByKey(ctx, key)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NewAppError(http.StatusUnauthorized, "invalid license key", domainerrors.ErrNotFound)
		}
		return nil, err
	}

	now := time.Now()
	switch license.Status {
	case entities.LicenseRevoked:
		return nil, domainerrors.NewAppError(http.StatusForbidden, "license has been revoked", domainerrors.ErrLicenseRevoked)
	case entities.LicenseExpired:
		return nil, domainerrors.NewAppError(http.StatusForbidden, "license has expired", domainerrors.ErrLicenseExpired)
	case entities.LicenseActive:
		if !license.ExpiresAt.After(now) {
			if err := u.licenseRepo.MarkExpired(ctx, license.ID); err != nil && err != domainerrors.ErrNotFound {
				return nil, err
			}
			return nil, domainerrors.NewAppError(http.StatusForbidden, "license has expired", domainerrors.ErrLicenseExpired)
		}
	}

	if err := u.licenseRepo.MarkActivated(ctx, license.ID, now); err != nil {
		return nil, err
	}

	activatedAt := now
	if license.ActivatedAt != nil {
		activatedAt = *license.ActivatedAt
	}

	return &entities.ActivationResult{
		ExpiresAt:     license.ExpiresAt,
		DaysRemaining: license.DaysRemaining(now),
		ActivatedAt:   activatedAt,
	}, nil
}

// ListMine returns the caller's licenses, newest first
func (u *LicenseUsecase) ListMine(ctx context.Context, userID uuid.UUID) ([]*entities.License, error) {
	return u.licenseRepo.ListByUserID(ctx, userID)
}

// List returns a page of all licenses for the admin surface
func (u *LicenseUsecase) List(ctx context.Context, limit, offset int) ([]*entities.License, int64, error) {
	return u.licenseRepo.List(ctx, limit, offset)
}

// Revoke disables an active license
func (u *LicenseUsecase) Revoke(ctx context.Context, licenseID string) error {
	id, err := uuid.Parse(licenseID)
	if err != nil {
		return domainerrors.BadRequest("invalid license id")
	}

	err = u.licenseRepo.Revoke(ctx, id)
	if err == domainerrors.ErrNotFound {
		return domainerrors.NotFound("active license not found")
	}
	return err
}
