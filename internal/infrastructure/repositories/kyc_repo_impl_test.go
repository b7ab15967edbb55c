package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"adlicense.backend/internal/domain/entities"
	domainerrors "adlicense.backend/internal/domain/errors"
)

func seedKYC(t *testing.T, repo *KYCRepository, userID uuid.UUID, submittedAt time.Time) *entities.KYCVerification {
	t.Helper()
	v := &entities.KYCVerification{
		ID:           uuid.New(),
		UserID:       userID,
		DocumentType: entities.DocumentNIC,
		FrontImage:   "front.jpg",
		BackImage:    null.StringFrom("back.jpg"),
		SubmittedAt:  submittedAt,
	}
	require.NoError(t, repo.Create(context.Background(), v))
	return v
}

func TestKYCRepository_CreateAndGetLatest(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createKYCVerificationTable(t, db)
	repo := NewKYCRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	older := seedKYC(t, repo, userID, time.Now().Add(-time.Hour))
	newer := seedKYC(t, repo, userID, time.Now())

	latest, err := repo.GetLatestByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, newer.ID, latest.ID)
	require.Equal(t, entities.KYCReviewPending, latest.Status)
	require.NotEqual(t, older.ID, latest.ID)

	_, err = repo.GetLatestByUserID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestKYCRepository_ResolveOnlyPending(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createKYCVerificationTable(t, db)
	repo := NewKYCRepository(db)
	ctx := context.Background()

	v := seedKYC(t, repo, uuid.New(), time.Now())
	reviewer := uuid.New()

	require.NoError(t, repo.Resolve(ctx, v.ID, entities.KYCReviewApproved, "", reviewer))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, entities.KYCReviewApproved, got.Status)
	require.NotNil(t, got.ReviewedBy)
	require.Equal(t, reviewer, *got.ReviewedBy)
	require.NotNil(t, got.ReviewedAt)

	// a second review of the same submission finds no pending row
	err = repo.Resolve(ctx, v.ID, entities.KYCReviewDeclined, "changed my mind", reviewer)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestKYCRepository_ResolveDeclineStoresReason(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createKYCVerificationTable(t, db)
	repo := NewKYCRepository(db)
	ctx := context.Background()

	v := seedKYC(t, repo, uuid.New(), time.Now())

	require.NoError(t, repo.Resolve(ctx, v.ID, entities.KYCReviewDeclined, "document expired", uuid.New()))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, entities.KYCReviewDeclined, got.Status)
	require.Equal(t, "document expired", got.DeclineReason.String)
}

func TestKYCRepository_ListAndCountPending(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createKYCVerificationTable(t, db)
	repo := NewKYCRepository(db)
	ctx := context.Background()

	first := seedKYC(t, repo, uuid.New(), time.Now().Add(-2*time.Hour))
	second := seedKYC(t, repo, uuid.New(), time.Now().Add(-time.Hour))
	resolved := seedKYC(t, repo, uuid.New(), time.Now())
	require.NoError(t, repo.Resolve(ctx, resolved.ID, entities.KYCReviewApproved, "", uuid.New()))

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// oldest first for review fairness
	require.Equal(t, first.ID, pending[0].ID)
	require.Equal(t, second.ID, pending[1].ID)

	total, err := repo.CountPending(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}
