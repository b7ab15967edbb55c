package usecases

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
	"adlicense.backend/internal/domain/repositories"
	"adlicense.backend/pkg/logger"
)

// KYCUsecase handles identity verification submissions and reviews
type KYCUsecase struct {
	kycRepo  repositories.KYCRepository
	userRepo repositories.UserRepository
	uow      repositories.UnitOfWork
	notifier Notifier
}

// NewKYCUsecase creates a new KYC usecase
func NewKYCUsecase(
	kycRepo repositories.KYCRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	notifier Notifier,
) *KYCUsecase {
	return &KYCUsecase{
		kycRepo:  kycRepo,
		userRepo: userRepo,
		uow:      uow,
		notifier: notifier,
	}
}

// Submit records a new document submission. A user may have only one
// pending or approved submission at a time; a declined one is replaced.
func (u *KYCUsecase) Submit(ctx context.Context, userID uuid.UUID, docType entities.DocumentType, frontFile, backFile string) (*entities.KYCVerification, error) {
	if !docType.Valid() {
		return nil, domainerrors.BadRequest("unknown document type")
	}
	if docType.RequiresBack() && backFile == "" {
		return nil, domainerrors.BadRequest("this document type requires a back-side image")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.ProfileCompleted {
		return nil, domainerrors.Precondition("complete your profile first", "PROFILE_INCOMPLETE", domainerrors.ErrProfileIncomplete)
	}

	latest, err := u.kycRepo.GetLatestByUserID(ctx, userID)
	if err != nil && err != domainerrors.ErrNotFound {
		return nil, err
	}
	if latest != nil && latest.Active() {
		return nil, domainerrors.NewAppError(http.StatusConflict, "a verification is already pending or approved", domainerrors.ErrKYCAlreadyActive)
	}

	verification := &entities.KYCVerification{
		UserID:       userID,
		DocumentType: docType,
		FrontImage:   frontFile,
		BackImage:    optionalString(backFile),
		SubmittedAt:  time.Now(),
	}
	if err := u.kycRepo.Create(ctx, verification); err != nil {
		return nil, err
	}

	if err := u.userRepo.SetKYCStatus(ctx, userID, entities.KYCSubmitted, ""); err != nil {
		return nil, err
	}

	logger.Info(ctx, "kyc submitted",
		zap.String("user_id", userID.String()),
		zap.String("document_type", string(docType)))
	u.notifier.KYCSubmitted(ctx, user.Email)

	return verification, nil
}

// Status returns the user's latest submission, if any
func (u *KYCUsecase) Status(ctx context.Context, userID uuid.UUID) (*entities.KYCVerification, error) {
	return u.kycRepo.GetLatestByUserID(ctx, userID)
}

// ListPending returns submissions awaiting review, oldest first
func (u *KYCUsecase) ListPending(ctx context.Context) ([]*entities.KYCVerification, error) {
	return u.kycRepo.ListPending(ctx)
}

// Review resolves a pending submission and syncs the user-level state
func (u *KYCUsecase) Review(ctx context.Context, reviewerID uuid.UUID, input *entities.ReviewKYCInput) (*entities.KYCVerification, error) {
	verificationID, err := uuid.Parse(input.VerificationID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid verification id")
	}

	status := entities.KYCReviewStatus(input.Status)
	if status == entities.KYCReviewDeclined && input.DeclineReason == "" {
		return nil, domainerrors.BadRequest("a decline reason is required")
	}

	verification, err := u.kycRepo.GetByID(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	userStatus := entities.KYCVerified
	if status == entities.KYCReviewDeclined {
		userStatus = entities.KYCDeclined
	}

	// the verification outcome and the user's kyc status move together
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.kycRepo.Resolve(txCtx, verificationID, status, input.DeclineReason, reviewerID); err != nil {
			return err
		}
		return u.userRepo.SetKYCStatus(txCtx, verification.UserID, userStatus, input.DeclineReason)
	})
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NewAppError(http.StatusConflict, "verification already reviewed", err)
		}
		return nil, err
	}

	logger.Info(ctx, "kyc reviewed",
		zap.String("verification_id", verificationID.String()),
		zap.String("status", input.Status))

	if verification.User != nil {
		u.notifier.KYCReviewed(ctx, verification.User.Email, verification.User.FullName(),
			status == entities.KYCReviewApproved, input.DeclineReason)
	}

	return u.kycRepo.GetByID(ctx, verificationID)
}
