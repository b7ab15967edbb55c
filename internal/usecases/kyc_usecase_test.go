package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
)

func completedUserRepo(userID uuid.UUID) *stubUserRepo {
	return &stubUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.User, error) {
			return &entities.User{ID: userID, Email: "jane@example.com", ProfileCompleted: true}, nil
		},
	}
}

func TestKYCUsecase_Submit(t *testing.T) {
	userID := uuid.New()
	var created *entities.KYCVerification
	var statusSet entities.KYCStatus
	users := completedUserRepo(userID)
	users.setKYCStatusFn = func(ctx context.Context, id uuid.UUID, status entities.KYCStatus, declineReason string) error {
		statusSet = status
		return nil
	}
	kycs := &stubKYCRepo{
		createFn: func(ctx context.Context, v *entities.KYCVerification) error {
			v.ID = uuid.New()
			created = v
			return nil
		},
	}
	notifier := &recordingNotifier{}
	uc := NewKYCUsecase(kycs, users, &stubUnitOfWork{}, notifier)

	got, err := uc.Submit(context.Background(), userID, entities.DocumentPassport, "front.jpg", "")
	require.NoError(t, err)
	require.Equal(t, created, got)
	require.Equal(t, entities.DocumentPassport, got.DocumentType)
	require.False(t, got.BackImage.Valid)
	require.Equal(t, entities.KYCSubmitted, statusSet)
	require.Equal(t, []string{"jane@example.com"}, notifier.kycSubmissions)
}

func TestKYCUsecase_Submit_DocumentRules(t *testing.T) {
	userID := uuid.New()
	uc := NewKYCUsecase(&stubKYCRepo{}, completedUserRepo(userID), &stubUnitOfWork{}, &recordingNotifier{})

	_, err := uc.Submit(context.Background(), userID, "voter_card", "front.jpg", "back.jpg")
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	// national identity cards need both sides
	_, err = uc.Submit(context.Background(), userID, entities.DocumentNIC, "front.jpg", "")
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestKYCUsecase_Submit_ProfileIncomplete(t *testing.T) {
	users := &stubUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.User, error) {
			return &entities.User{ID: id}, nil
		},
	}
	uc := NewKYCUsecase(&stubKYCRepo{}, users, &stubUnitOfWork{}, &recordingNotifier{})

	_, err := uc.Submit(context.Background(), uuid.New(), entities.DocumentPassport, "front.jpg", "")
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 403, appErr.Status)
	require.Equal(t, "PROFILE_INCOMPLETE", appErr.Flag)
}

func TestKYCUsecase_Submit_ActiveSubmissionBlocks(t *testing.T) {
	userID := uuid.New()
	kycs := &stubKYCRepo{
		getLatestByUserIDFn: func(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error) {
			return &entities.KYCVerification{ID: uuid.New(), UserID: id, Status: entities.KYCReviewPending}, nil
		},
	}
	uc := NewKYCUsecase(kycs, completedUserRepo(userID), &stubUnitOfWork{}, &recordingNotifier{})

	_, err := uc.Submit(context.Background(), userID, entities.DocumentPassport, "front.jpg", "")
	require.ErrorIs(t, err, domainerrors.ErrKYCAlreadyActive)
}

func TestKYCUsecase_Submit_DeclinedSubmissionIsReplaceable(t *testing.T) {
	userID := uuid.New()
	kycs := &stubKYCRepo{
		getLatestByUserIDFn: func(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error) {
			return &entities.KYCVerification{ID: uuid.New(), UserID: id, Status: entities.KYCReviewDeclined}, nil
		},
	}
	uc := NewKYCUsecase(kycs, completedUserRepo(userID), &stubUnitOfWork{}, &recordingNotifier{})

	_, err := uc.Submit(context.Background(), userID, entities.DocumentPassport, "front.jpg", "")
	require.NoError(t, err)
}

func TestKYCUsecase_Review_Approve(t *testing.T) {
	verificationID := uuid.New()
	userID := uuid.New()
	verification := &entities.KYCVerification{
		ID:          verificationID,
		UserID:      userID,
		Status:      entities.KYCReviewPending,
		SubmittedAt: time.Now(),
		User:        &entities.User{ID: userID, Email: "jane@example.com"},
	}
	var resolvedStatus entities.KYCReviewStatus
	var userStatus entities.KYCStatus
	kycs := &stubKYCRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error) {
			return verification, nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, status entities.KYCReviewStatus, declineReason string, reviewedBy uuid.UUID) error {
			resolvedStatus = status
			return nil
		},
	}
	users := &stubUserRepo{
		setKYCStatusFn: func(ctx context.Context, id uuid.UUID, status entities.KYCStatus, declineReason string) error {
			userStatus = status
			return nil
		},
	}
	notifier := &recordingNotifier{}
	uow := &stubUnitOfWork{}
	uc := NewKYCUsecase(kycs, users, uow, notifier)

	_, err := uc.Review(context.Background(), uuid.New(), &entities.ReviewKYCInput{
		VerificationID: verificationID.String(),
		Status:         "approved",
	})
	require.NoError(t, err)
	require.Equal(t, 1, uow.calls)
	require.Equal(t, entities.KYCReviewApproved, resolvedStatus)
	require.Equal(t, entities.KYCVerified, userStatus)
	require.Equal(t, []bool{true}, notifier.kycResults)
}

func TestKYCUsecase_Review_DeclineNeedsReason(t *testing.T) {
	uc := NewKYCUsecase(&stubKYCRepo{}, &stubUserRepo{}, &stubUnitOfWork{}, &recordingNotifier{})

	_, err := uc.Review(context.Background(), uuid.New(), &entities.ReviewKYCInput{
		VerificationID: uuid.New().String(),
		Status:         "declined",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestKYCUsecase_Review_AlreadyReviewed(t *testing.T) {
	verificationID := uuid.New()
	kycs := &stubKYCRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error) {
			return &entities.KYCVerification{ID: id, Status: entities.KYCReviewApproved}, nil
		},
		resolveFn: func(ctx context.Context, id uuid.UUID, status entities.KYCReviewStatus, declineReason string, reviewedBy uuid.UUID) error {
			return domainerrors.ErrNotFound
		},
	}
	uc := NewKYCUsecase(kycs, &stubUserRepo{}, &stubUnitOfWork{}, &recordingNotifier{})

	_, err := uc.Review(context.Background(), uuid.New(), &entities.ReviewKYCInput{
		VerificationID: verificationID.String(),
		Status:         "approved",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 409, appErr.Status)
}

func TestKYCUsecase_Status(t *testing.T) {
	userID := uuid.New()
	latest := &entities.KYCVerification{ID: uuid.New(), UserID: userID}
	kycs := &stubKYCRepo{
		getLatestByUserIDFn: func(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error) {
			return latest, nil
		},
	}
	uc := NewKYCUsecase(kycs, &stubUserRepo{}, &stubUnitOfWork{}, &recordingNotifier{})

	got, err := uc.Status(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, latest, got)
}
