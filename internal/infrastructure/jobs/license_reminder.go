package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"adlicense.backend/internal/domain/entities"
	domainRepos "adlicense.backend/internal/domain/repositories"
	"adlicense.backend/pkg/logger"
)

// ReminderNotifier is the slice of the notifier the reminder job needs
type ReminderNotifier interface {
	ExpiryReminder(ctx context.Context, email, name, key string, expiresAt time.Time, daysLeft int)
}

// LicenseReminderJob warns users whose licenses expire within the
// configured window. Each license is reminded at most once; the guard is
// flipped before a second run can pick the row up again.
type LicenseReminderJob struct {
	repo     domainRepos.LicenseRepository
	notifier ReminderNotifier
	days     int
	interval time.Duration
	stop     chan struct{}
}

// NewLicenseReminderJob creates the reminder job
func NewLicenseReminderJob(repo domainRepos.LicenseRepository, notifier ReminderNotifier, days int, interval time.Duration) *LicenseReminderJob {
	return &LicenseReminderJob{
		repo:     repo,
		notifier: notifier,
		days:     days,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the reminder loop until the context is cancelled or Stop is
// called
func (j *LicenseReminderJob) Start(ctx context.Context) {
	logger.Info(ctx, "license reminder job started",
		zap.Int("days_before_expiry", j.days),
		zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "license reminder job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "license reminder job stopped")
			return
		case <-ticker.C:
			j.run(ctx)
		}
	}
}

// Stop terminates the loop
func (j *LicenseReminderJob) Stop() {
	close(j.stop)
}

func (j *LicenseReminderJob) run(ctx context.Context) {
	now := time.Now()
	deadline := now.AddDate(0, 0, j.days)

	due, err := j.repo.ListExpiringWithin(ctx, deadline)
	if err != nil {
		logger.Error(ctx, "license reminder query failed", zap.Error(err))
		return
	}

	for _, license := range due {
		j.remind(ctx, license, now)
	}
}

func (j *LicenseReminderJob) remind(ctx context.Context, license *entities.License, now time.Time) {
	if license.User == nil {
		logger.Warn(ctx, "license has no user loaded", zap.String("license_id", license.ID.String()))
		return
	}

	// the guard flips before the send; a crashed run cannot remind twice
	if err := j.repo.MarkReminderSent(ctx, license.ID); err != nil {
		logger.Error(ctx, "failed to mark reminder sent",
			zap.String("license_id", license.ID.String()), zap.Error(err))
		return
	}

	j.notifier.ExpiryReminder(ctx,
		license.User.Email,
		license.User.FullName(),
		license.LicenseKey,
		license.ExpiresAt,
		license.DaysRemaining(now))

	logger.Info(ctx, "expiry reminder sent",
		zap.String("license_id", license.ID.String()),
		zap.Time("expires_at", license.ExpiresAt))
}
