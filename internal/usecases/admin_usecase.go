package usecases

import (
	"context"

	"adlicense.backend/internal/domain/entities"
	"adlicense.backend/internal/domain/repositories"
)

// AdminUsecase backs the admin dashboard
type AdminUsecase struct {
	userRepo    repositories.UserRepository
	kycRepo     repositories.KYCRepository
	paymentRepo repositories.PaymentRepository
	licenseRepo repositories.LicenseRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	kycRepo repositories.KYCRepository,
	paymentRepo repositories.PaymentRepository,
	licenseRepo repositories.LicenseRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:    userRepo,
		kycRepo:     kycRepo,
		paymentRepo: paymentRepo,
		licenseRepo: licenseRepo,
	}
}

// Stats aggregates the dashboard counters
func (u *AdminUsecase) Stats(ctx context.Context) (*entities.AdminStats, error) {
	totalUsers, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	pendingKYC, err := u.kycRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	pendingPayments, err := u.paymentRepo.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	activeLicenses, err := u.licenseRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := u.paymentRepo.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}

	return &entities.AdminStats{
		TotalUsers:      totalUsers,
		PendingKYC:      pendingKYC,
		PendingPayments: pendingPayments,
		ActiveLicenses:  activeLicenses,
		TotalRevenue:    totalRevenue,
	}, nil
}

// ListUsers returns a page of registered users
func (u *AdminUsecase) ListUsers(ctx context.Context, limit, offset int) ([]*entities.User, int64, error) {
	users, err := u.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
