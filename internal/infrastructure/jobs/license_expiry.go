package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	domainRepos "adlicense.backend/internal/domain/repositories"
	"adlicense.backend/pkg/logger"
)

// LicenseExpiryJob periodically flips overdue active licenses to expired.
// The sweep is one conditional bulk update, so overlapping runs are
// harmless.
type LicenseExpiryJob struct {
	repo     domainRepos.LicenseRepository
	interval time.Duration
	stop     chan struct{}
}

// NewLicenseExpiryJob creates the sweep job
func NewLicenseExpiryJob(repo domainRepos.LicenseRepository, interval time.Duration) *LicenseExpiryJob {
	return &LicenseExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is
// called. One sweep runs immediately on start.
func (j *LicenseExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "license expiry job started", zap.Duration("interval", j.interval))

	j.sweep(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "license expiry job stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "license expiry job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

// Stop terminates the loop
func (j *LicenseExpiryJob) Stop() {
	close(j.stop)
}

func (j *LicenseExpiryJob) sweep(ctx context.Context) {
	expired, err := j.repo.ExpireOverdue(ctx, time.Now())
	if err != nil {
		logger.Error(ctx, "license expiry sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		logger.Info(ctx, "licenses expired", zap.Int64("count", expired))
	}
}
