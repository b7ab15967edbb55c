package usecases

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"adlicense.backend/internal/config"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/domain/repositories"
	"adlicense.backend/pkg/crypto"
	"adlicense.backend/pkg/logger"
)

const defaultDeclineReason = "Your payment has not been received. Please contact your bank."

// key minting retries on unique-constraint collisions
const keyAttempts = 5

var (
	generateLicenseKey    = crypto.GenerateLicenseKey
	generateTransactionID = crypto.GenerateTransactionID
)

// PaymentUsecase handles the purchase flow and license minting
type PaymentUsecase struct {
	paymentRepo  repositories.PaymentRepository
	pricingRepo  repositories.PricingRepository
	discountRepo repositories.DiscountRepository
	licenseRepo  repositories.LicenseRepository
	userRepo     repositories.UserRepository
	uow          repositories.UnitOfWork
	notifier     Notifier
	cfg          config.PaymentConfig
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	pricingRepo repositories.PricingRepository,
	discountRepo repositories.DiscountRepository,
	licenseRepo repositories.LicenseRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	notifier Notifier,
	cfg config.PaymentConfig,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo:  paymentRepo,
		pricingRepo:  pricingRepo,
		discountRepo: discountRepo,
		licenseRepo:  licenseRepo,
		userRepo:     userRepo,
		uow:          uow,
		notifier:     notifier,
		cfg:          cfg,
	}
}

// Create opens a pending payment for a plan. When a discount code is given
// its use is consumed in the same transaction that records the payment.
func (u *PaymentUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentInput) (*entities.CreatePaymentResponse, error) {
	planID, err := uuid.Parse(input.PlanID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid plan id")
	}

	plan, err := u.pricingRepo.GetActiveByID(ctx, planID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("pricing plan not found")
		}
		return nil, err
	}

	payment := &entities.Payment{
		UserID:      userID,
		PlanID:      plan.ID,
		Method:      entities.PaymentMethod(input.Method),
		Amount:      plan.Price,
		FinalAmount: plan.Price,
	}

	var discount *entities.DiscountCode
	if input.DiscountCode != "" {
		discount, err = u.discountRepo.GetByCode(ctx, input.DiscountCode)
		if err != nil {
			if err == domainerrors.ErrNotFound {
				return nil, domainerrors.BadRequest("invalid or expired discount code")
			}
			return nil, err
		}
		if !discount.Usable(time.Now()) {
			return nil, domainerrors.BadRequest("invalid or expired discount code")
		}
		payment.DiscountCodeID = &discount.ID
		payment.DiscountAmount = discount.AmountOff(plan.Price)
		payment.FinalAmount = plan.Price - payment.DiscountAmount
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if discount != nil {
			if err := u.discountRepo.Consume(ctx, discount.ID); err != nil {
				return err
			}
		}
		return u.paymentRepo.Create(ctx, payment)
	})
	if err != nil {
		if err == domainerrors.ErrInvalidDiscount {
			return nil, domainerrors.BadRequest("invalid or expired discount code")
		}
		return nil, err
	}

	return &entities.CreatePaymentResponse{
		PaymentID:      payment.ID,
		Amount:         payment.Amount,
		DiscountAmount: payment.DiscountAmount,
		FinalAmount:    payment.FinalAmount,
		Method:         payment.Method,
		Status:         entities.PaymentPending,
	}, nil
}

// AttachProof records the uploaded bank transfer slip on a pending payment
func (u *PaymentUsecase) AttachProof(ctx context.Context, userID uuid.UUID, paymentID string, filename string) (*entities.Payment, error) {
	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid payment id")
	}

	payment, err := u.paymentRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if payment.Method != entities.MethodBankTransfer {
		return nil, domainerrors.BadRequest("payment proof applies to bank transfers only")
	}
	if payment.Status.Terminal() {
		return nil, domainerrors.NewAppError(http.StatusConflict, "payment has already been reviewed", domainerrors.ErrPaymentResolved)
	}

	if err := u.paymentRepo.AttachProof(ctx, id, userID, filename); err != nil {
		return nil, err
	}

	u.notifyPaymentSubmitted(ctx, payment)
	return u.paymentRepo.GetByIDForUser(ctx, id, userID)
}

// ProcessOnline settles an online payment through the demo gateway. The
// gateway always approves; it exists so the flow can be exercised without
// a processor account.
func (u *PaymentUsecase) ProcessOnline(ctx context.Context, userID uuid.UUID, input *entities.ProcessOnlineInput) (*entities.License, error) {
	if !u.cfg.DemoGateway {
		return nil, domainerrors.NewAppError(http.StatusServiceUnavailable, "online payments are not available", domainerrors.ErrGatewayDisabled)
	}

	id, err := uuid.Parse(input.PaymentID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid payment id")
	}

	payment, err := u.paymentRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if payment.Method != entities.MethodOnline {
		return nil, domainerrors.BadRequest("payment is not an online payment")
	}
	if payment.Status.Terminal() {
		return nil, domainerrors.NewAppError(http.StatusConflict, "payment has already been processed", domainerrors.ErrPaymentResolved)
	}

	txnID, err := generateTransactionID()
	if err != nil {
		return nil, err
	}
	license, err := u.settle(ctx, payment, txnID, nil)
	if err != nil {
		return nil, err
	}

	u.notifyLicenseIssued(ctx, payment.UserID, license)
	return license, nil
}

// ListMine returns the caller's payments, newest first
func (u *PaymentUsecase) ListMine(ctx context.Context, userID uuid.UUID) ([]*entities.Payment, error) {
	return u.paymentRepo.ListByUserID(ctx, userID)
}

// List returns a page of all payments for the admin surface
func (u *PaymentUsecase) List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error) {
	return u.paymentRepo.List(ctx, limit, offset)
}

// Review resolves a pending payment. Success mints the license in the same
// transaction; failed and declined record a reason for the user.
func (u *PaymentUsecase) Review(ctx context.Context, reviewerID uuid.UUID, input *entities.ReviewPaymentInput) (*entities.Payment, error) {
	id, err := uuid.Parse(input.PaymentID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid payment id")
	}

	payment, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status.Terminal() {
		return nil, domainerrors.NewAppError(http.StatusConflict, "payment has already been reviewed", domainerrors.ErrPaymentResolved)
	}

	status := entities.PaymentStatus(input.Status)
	switch status {
	case entities.PaymentSuccess:
		license, err := u.settle(ctx, payment, "", &reviewerID)
		if err != nil {
			return nil, err
		}
		u.notifyLicenseIssued(ctx, payment.UserID, license)
	case entities.PaymentFailed, entities.PaymentDeclined:
		reason := input.DeclineReason
		if reason == "" {
			reason = defaultDeclineReason
		}
		err := u.paymentRepo.Resolve(ctx, id, status, "", reason, &reviewerID)
		if err != nil {
			if err == domainerrors.ErrPaymentResolved {
				return nil, domainerrors.NewAppError(http.StatusConflict, "payment has already been reviewed", err)
			}
			return nil, err
		}
		u.notifyPaymentFailed(ctx, payment.UserID, reason)
	default:
		return nil, domainerrors.BadRequest("invalid review status")
	}

	return u.paymentRepo.GetByID(ctx, id)
}

// settle marks the payment successful and mints its license atomically.
// Key collisions retry with a fresh key inside the same transaction.
func (u *PaymentUsecase) settle(ctx context.Context, payment *entities.Payment, transactionID string, reviewerID *uuid.UUID) (*entities.License, error) {
	plan, err := u.pricingRepo.GetByID(ctx, payment.PlanID)
	if err != nil {
		return nil, err
	}

	var license *entities.License
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.paymentRepo.Resolve(ctx, payment.ID, entities.PaymentSuccess, transactionID, "", reviewerID); err != nil {
			return err
		}
		license, err = u.mintLicense(ctx, payment, plan.DurationMonths)
		return err
	})
	if err != nil {
		if err == domainerrors.ErrPaymentResolved {
			return nil, domainerrors.NewAppError(http.StatusConflict, "payment has already been reviewed", err)
		}
		return nil, err
	}
	return license, nil
}

func (u *PaymentUsecase) mintLicense(ctx context.Context, payment *entities.Payment, durationMonths int) (*entities.License, error) {
	expiresAt := time.Now().AddDate(0, durationMonths, 0)

	for attempt := 0; attempt < keyAttempts; attempt++ {
		key, err := generateLicenseKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate license key: %w", err)
		}

		license := &entities.License{
			UserID:     payment.UserID,
			PaymentID:  payment.ID,
			PlanID:     payment.PlanID,
			LicenseKey: key,
			Status:     entities.LicenseActive,
			ExpiresAt:  expiresAt,
		}
		err = u.licenseRepo.Create(ctx, license)
		if err == nil {
			return license, nil
		}
		if err != gorm.ErrDuplicatedKey {
			return nil, err
		}
	}
	return nil, fmt.Errorf("failed to mint a unique license key after %d attempts", keyAttempts)
}

func (u *PaymentUsecase) notifyLicenseIssued(ctx context.Context, userID uuid.UUID, license *entities.License) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "license notification skipped, user lookup failed", zap.Error(err))
		return
	}
	u.notifier.LicenseIssued(ctx, user.Email, user.FullName(), license.LicenseKey, license.ExpiresAt)
}

func (u *PaymentUsecase) notifyPaymentFailed(ctx context.Context, userID uuid.UUID, reason string) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "payment notification skipped, user lookup failed", zap.Error(err))
		return
	}
	u.notifier.PaymentFailed(ctx, user.Email, user.FullName(), reason)
}

func (u *PaymentUsecase) notifyPaymentSubmitted(ctx context.Context, payment *entities.Payment) {
	user, err := u.userRepo.GetByID(ctx, payment.UserID)
	if err != nil {
		logger.Warn(ctx, "payment notification skipped, user lookup failed", zap.Error(err))
		return
	}
	u.notifier.PaymentSubmitted(ctx, user.Email, payment.FinalAmount)
}
