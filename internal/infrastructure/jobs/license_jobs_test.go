package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"adlicense.backend/internal/domain/entities"
	"adlicense.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	m.Run()
}

type stubLicenseRepo struct {
	mu          sync.Mutex
	expireCalls int
	expireErr   error
	expiring    []*entities.License
	listErr     error
	remindedIDs []uuid.UUID
	markErr     error
}

func (s *stubLicenseRepo) Create(context.Context, *entities.License) error { return nil }
func (s *stubLicenseRepo) GetByKey(context.Context, string) (*entities.License, error) {
	return nil, errors.New("not implemented")
}
func (s *stubLicenseRepo) MarkActivated(context.Context, uuid.UUID, time.Time) error { return nil }
func (s *stubLicenseRepo) MarkExpired(context.Context, uuid.UUID) error              { return nil }
func (s *stubLicenseRepo) Revoke(context.Context, uuid.UUID) error                   { return nil }
func (s *stubLicenseRepo) ListByUserID(context.Context, uuid.UUID) ([]*entities.License, error) {
	return nil, nil
}
func (s *stubLicenseRepo) ListActiveByUserID(context.Context, uuid.UUID) ([]*entities.License, error) {
	return nil, nil
}
func (s *stubLicenseRepo) List(context.Context, int, int) ([]*entities.License, int64, error) {
	return nil, 0, nil
}
func (s *stubLicenseRepo) CountActive(context.Context) (int64, error) { return 0, nil }

func (s *stubLicenseRepo) ExpireOverdue(context.Context, time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireCalls++
	if s.expireErr != nil {
		return 0, s.expireErr
	}
	return 2, nil
}

func (s *stubLicenseRepo) ListExpiringWithin(context.Context, time.Time) ([]*entities.License, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.expiring, nil
}

func (s *stubLicenseRepo) MarkReminderSent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markErr != nil {
		return s.markErr
	}
	s.remindedIDs = append(s.remindedIDs, id)
	return nil
}

func (s *stubLicenseRepo) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expireCalls
}

type stubNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *stubNotifier) ExpiryReminder(_ context.Context, email, _, key string, _ time.Time, daysLeft int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, email+"|"+key)
	_ = daysLeft
}

func expiringLicense(email string, expiresAt time.Time) *entities.License {
	return &entities.License{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		LicenseKey: "AAAA-BBBB-CCCC-DDDD",
		Status:     entities.LicenseActive,
		ExpiresAt:  expiresAt,
		User:       &entities.User{ID: uuid.New(), Email: email},
	}
}

func TestLicenseExpiryJob_SweepsOnStartAndTick(t *testing.T) {
	repo := &stubLicenseRepo{}
	job := NewLicenseExpiryJob(repo, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return repo.calls() >= 2 }, time.Second, 5*time.Millisecond)

	job.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop")
	}
}

func TestLicenseExpiryJob_ContextCancelStops(t *testing.T) {
	repo := &stubLicenseRepo{expireErr: errors.New("db down")}
	job := NewLicenseExpiryJob(repo, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestLicenseReminderJob_RemindsEachLicenseOnce(t *testing.T) {
	soon := time.Now().AddDate(0, 0, 3)
	a := expiringLicense("a@example.com", soon)
	b := expiringLicense("b@example.com", soon)
	repo := &stubLicenseRepo{expiring: []*entities.License{a, b}}
	notifier := &stubNotifier{}

	job := NewLicenseReminderJob(repo, notifier, 5, time.Hour)
	job.run(context.Background())

	require.Len(t, notifier.calls, 2)
	require.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, repo.remindedIDs)
}

func TestLicenseReminderJob_SkipsWhenGuardFails(t *testing.T) {
	l := expiringLicense("a@example.com", time.Now().AddDate(0, 0, 2))
	repo := &stubLicenseRepo{expiring: []*entities.License{l}, markErr: errors.New("db down")}
	notifier := &stubNotifier{}

	job := NewLicenseReminderJob(repo, notifier, 5, time.Hour)
	job.run(context.Background())

	require.Empty(t, notifier.calls)
}

func TestLicenseReminderJob_SkipsLicenseWithoutUser(t *testing.T) {
	l := expiringLicense("x@example.com", time.Now().AddDate(0, 0, 2))
	l.User = nil
	repo := &stubLicenseRepo{expiring: []*entities.License{l}}
	notifier := &stubNotifier{}

	job := NewLicenseReminderJob(repo, notifier, 5, time.Hour)
	job.run(context.Background())

	require.Empty(t, notifier.calls)
	require.Empty(t, repo.remindedIDs)
}

func TestLicenseReminderJob_ListFailure(t *testing.T) {
	repo := &stubLicenseRepo{listErr: errors.New("db down")}
	notifier := &stubNotifier{}

	job := NewLicenseReminderJob(repo, notifier, 5, time.Hour)
	job.run(context.Background())

	require.Empty(t, notifier.calls)
}
