package usecases

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/pkg/googleauth"
	"adlicense.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

// Function-field stubs. Unset getters report ErrNotFound, unset mutators
// succeed, unset lists come back empty.

type stubUserRepo struct {
	createFn          func(ctx context.Context, user *entities.User) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByGoogleSubFn  func(ctx context.Context, sub string) (*entities.User, error)
	completeProfileFn func(ctx context.Context, user *entities.User) error
	setKYCStatusFn    func(ctx context.Context, id uuid.UUID, status entities.KYCStatus, declineReason string) error
	listFn            func(ctx context.Context, limit, offset int) ([]*entities.User, error)
	countFn           func(ctx context.Context) (int64, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubUserRepo) GetByGoogleSub(ctx context.Context, sub string) (*entities.User, error) {
	if s.getByGoogleSubFn != nil {
		return s.getByGoogleSubFn(ctx, sub)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubUserRepo) CompleteProfile(ctx context.Context, user *entities.User) error {
	if s.completeProfileFn != nil {
		return s.completeProfileFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (s *stubUserRepo) SetKYCStatus(ctx context.Context, id uuid.UUID, status entities.KYCStatus, declineReason string) error {
	if s.setKYCStatusFn != nil {
		return s.setKYCStatusFn(ctx, id, status, declineReason)
	}
	return nil
}

func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	if s.countFn != nil {
		return s.countFn(ctx)
	}
	return 0, nil
}

type stubAdminRepo struct {
	getByUsernameFn  func(ctx context.Context, username string) (*entities.AdminUser, error)
	touchLastLoginFn func(ctx context.Context, id uuid.UUID) error
}

func (s *stubAdminRepo) GetByUsername(ctx context.Context, username string) (*entities.AdminUser, error) {
	if s.getByUsernameFn != nil {
		return s.getByUsernameFn(ctx, username)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubAdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.AdminUser, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *stubAdminRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	if s.touchLastLoginFn != nil {
		return s.touchLastLoginFn(ctx, id)
	}
	return nil
}

type stubKYCRepo struct {
	createFn            func(ctx context.Context, verification *entities.KYCVerification) error
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error)
	getLatestByUserIDFn func(ctx context.Context, userID uuid.UUID) (*entities.KYCVerification, error)
	resolveFn           func(ctx context.Context, id uuid.UUID, status entities.KYCReviewStatus, declineReason string, reviewedBy uuid.UUID) error
	listPendingFn       func(ctx context.Context) ([]*entities.KYCVerification, error)
	countPendingFn      func(ctx context.Context) (int64, error)
}

func (s *stubKYCRepo) Create(ctx context.Context, verification *entities.KYCVerification) error {
	if s.createFn != nil {
		return s.createFn(ctx, verification)
	}
	return nil
}

func (s *stubKYCRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubKYCRepo) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.KYCVerification, error) {
	if s.getLatestByUserIDFn != nil {
		return s.getLatestByUserIDFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubKYCRepo) Resolve(ctx context.Context, id uuid.UUID, status entities.KYCReviewStatus, declineReason string, reviewedBy uuid.UUID) error {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, id, status, declineReason, reviewedBy)
	}
	return nil
}

func (s *stubKYCRepo) ListPending(ctx context.Context) ([]*entities.KYCVerification, error) {
	if s.listPendingFn != nil {
		return s.listPendingFn(ctx)
	}
	return nil, nil
}

func (s *stubKYCRepo) CountPending(ctx context.Context) (int64, error) {
	if s.countPendingFn != nil {
		return s.countPendingFn(ctx)
	}
	return 0, nil
}

type stubPricingRepo struct {
	listActiveFn    func(ctx context.Context) ([]*entities.PricingPlan, error)
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*entities.PricingPlan, error)
	getActiveByIDFn func(ctx context.Context, id uuid.UUID) (*entities.PricingPlan, error)
	updateFn        func(ctx context.Context, plan *entities.PricingPlan) error
}

func (s *stubPricingRepo) ListActive(ctx context.Context) ([]*entities.PricingPlan, error) {
	if s.listActiveFn != nil {
		return s.listActiveFn(ctx)
	}
	return nil, nil
}

func (s *stubPricingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.PricingPlan, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubPricingRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*entities.PricingPlan, error) {
	if s.getActiveByIDFn != nil {
		return s.getActiveByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubPricingRepo) Update(ctx context.Context, plan *entities.PricingPlan) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, plan)
	}
	return nil
}

type stubDiscountRepo struct {
	createFn    func(ctx context.Context, code *entities.DiscountCode) error
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*entities.DiscountCode, error)
	getByCodeFn func(ctx context.Context, code string) (*entities.DiscountCode, error)
	consumeFn   func(ctx context.Context, id uuid.UUID) error
	listFn      func(ctx context.Context) ([]*entities.DiscountCode, error)
	setActiveFn func(ctx context.Context, id uuid.UUID, active bool) error
}

func (s *stubDiscountRepo) Create(ctx context.Context, code *entities.DiscountCode) error {
	if s.createFn != nil {
		return s.createFn(ctx, code)
	}
	return nil
}

func (s *stubDiscountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.DiscountCode, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubDiscountRepo) GetByCode(ctx context.Context, code string) (*entities.DiscountCode, error) {
	if s.getByCodeFn != nil {
		return s.getByCodeFn(ctx, code)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubDiscountRepo) Consume(ctx context.Context, id uuid.UUID) error {
	if s.consumeFn != nil {
		return s.consumeFn(ctx, id)
	}
	return nil
}

func (s *stubDiscountRepo) List(ctx context.Context) ([]*entities.DiscountCode, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubDiscountRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if s.setActiveFn != nil {
		return s.setActiveFn(ctx, id, active)
	}
	return nil
}

type stubPaymentRepo struct {
	createFn              func(ctx context.Context, payment *entities.Payment) error
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	getByIDForUserFn      func(ctx context.Context, id, userID uuid.UUID) (*entities.Payment, error)
	resolveFn             func(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, transactionID, declineReason string, reviewedBy *uuid.UUID) error
	attachProofFn         func(ctx context.Context, id, userID uuid.UUID, filename string) error
	listByUserIDFn        func(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error)
	listPendingByUserIDFn func(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error)
	listFn                func(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error)
	countPendingFn        func(ctx context.Context) (int64, error)
	sumRevenueFn          func(ctx context.Context) (float64, error)
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *entities.Payment) error {
	if s.createFn != nil {
		return s.createFn(ctx, payment)
	}
	return nil
}

func (s *stubPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubPaymentRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entities.Payment, error) {
	if s.getByIDForUserFn != nil {
		return s.getByIDForUserFn(ctx, id, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubPaymentRepo) Resolve(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, transactionID, declineReason string, reviewedBy *uuid.UUID) error {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, id, status, transactionID, declineReason, reviewedBy)
	}
	return nil
}

func (s *stubPaymentRepo) AttachProof(ctx context.Context, id, userID uuid.UUID, filename string) error {
	if s.attachProofFn != nil {
		return s.attachProofFn(ctx, id, userID, filename)
	}
	return nil
}

func (s *stubPaymentRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error) {
	if s.listByUserIDFn != nil {
		return s.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubPaymentRepo) ListPendingByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error) {
	if s.listPendingByUserIDFn != nil {
		return s.listPendingByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubPaymentRepo) List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (s *stubPaymentRepo) CountPending(ctx context.Context) (int64, error) {
	if s.countPendingFn != nil {
		return s.countPendingFn(ctx)
	}
	return 0, nil
}

func (s *stubPaymentRepo) SumRevenue(ctx context.Context) (float64, error) {
	if s.sumRevenueFn != nil {
		return s.sumRevenueFn(ctx)
	}
	return 0, nil
}

type stubLicenseRepo struct {
	createFn             func(ctx context.Context, license *entities.License) error
	getByKeyFn           func(ctx context.Context, key string) (*entities.License, error)
	markActivatedFn      func(ctx context.Context, id uuid.UUID, at time.Time) error
	markExpiredFn        func(ctx context.Context, id uuid.UUID) error
	revokeFn             func(ctx context.Context, id uuid.UUID) error
	listByUserIDFn       func(ctx context.Context, userID uuid.UUID) ([]*entities.License, error)
	listActiveByUserIDFn func(ctx context.Context, userID uuid.UUID) ([]*entities.License, error)
	listFn               func(ctx context.Context, limit, offset int) ([]*entities.License, int64, error)
	countActiveFn        func(ctx context.Context) (int64, error)
}

func (s *stubLicenseRepo) Create(ctx context.Context, license *entities.License) error {
	if s.createFn != nil {
		return s.createFn(ctx, license)
	}
	return nil
}

func (s *stubLicenseRepo) GetByKey(ctx context.Context, key string) (*entities.License, error) {
	if s.getByKeyFn != nil {
		return s.getByKeyFn(ctx, key)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubLicenseRepo) MarkActivated(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.markActivatedFn != nil {
		return s.markActivatedFn(ctx, id, at)
	}
	return nil
}

func (s *stubLicenseRepo) MarkExpired(ctx context.Context, id uuid.UUID) error {
	if s.markExpiredFn != nil {
		return s.markExpiredFn(ctx, id)
	}
	return nil
}

func (s *stubLicenseRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	if s.revokeFn != nil {
		return s.revokeFn(ctx, id)
	}
	return nil
}

func (s *stubLicenseRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.License, error) {
	if s.listByUserIDFn != nil {
		return s.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubLicenseRepo) ListActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.License, error) {
	if s.listActiveByUserIDFn != nil {
		return s.listActiveByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (s *stubLicenseRepo) List(ctx context.Context, limit, offset int) ([]*entities.License, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (s *stubLicenseRepo) CountActive(ctx context.Context) (int64, error) {
	if s.countActiveFn != nil {
		return s.countActiveFn(ctx)
	}
	return 0, nil
}

func (s *stubLicenseRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (s *stubLicenseRepo) ListExpiringWithin(ctx context.Context, deadline time.Time) ([]*entities.License, error) {
	return nil, nil
}

func (s *stubLicenseRepo) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	return nil
}

// stubUnitOfWork runs fn inline, recording invocations
type stubUnitOfWork struct {
	calls int
	err   error
}

func (s *stubUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return fn(ctx)
}

// recordingNotifier captures notification calls
type recordingNotifier struct {
	mu             sync.Mutex
	welcomes       []string
	licenseKeys    []string
	failedReasons  []string
	submittedAmts  []float64
	kycSubmissions []string
	kycResults     []bool
	reminders      []string
}

func (n *recordingNotifier) Welcome(ctx context.Context, email, name, uid string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, email)
}

func (n *recordingNotifier) LicenseIssued(ctx context.Context, email, name, key string, expiresAt time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.licenseKeys = append(n.licenseKeys, key)
}

func (n *recordingNotifier) PaymentFailed(ctx context.Context, email, name, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failedReasons = append(n.failedReasons, reason)
}

func (n *recordingNotifier) PaymentSubmitted(ctx context.Context, email string, amount float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submittedAmts = append(n.submittedAmts, amount)
}

func (n *recordingNotifier) KYCSubmitted(ctx context.Context, email string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kycSubmissions = append(n.kycSubmissions, email)
}

func (n *recordingNotifier) KYCReviewed(ctx context.Context, email, name string, approved bool, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kycResults = append(n.kycResults, approved)
}

func (n *recordingNotifier) ExpiryReminder(ctx context.Context, email, name, key string, expiresAt time.Time, daysLeft int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reminders = append(n.reminders, key)
}

// stubVerifier returns canned identity claims
type stubVerifier struct {
	claims *googleauth.Claims
	err    error
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*googleauth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}
