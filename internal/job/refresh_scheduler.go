// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobnagringa-content-api/internal/app/service"
	"jobnagringa-content-api/pkg/locker"
)

// refreshLockKey guards the periodic refresh across instances.
const refreshLockKey = "content:refresh:lock"

// RefreshScheduler periodically pulls fresh content from the CMS. A
// distributed lock ensures only one instance refreshes per interval.
type RefreshScheduler struct {
	syncService *service.SyncService
	interval    time.Duration
	timeout     time.Duration
	logger      *zap.Logger
	locker      locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RefreshConfig holds refresh scheduler configuration.
type RefreshConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewRefreshScheduler creates a RefreshScheduler with distributed locking.
func NewRefreshScheduler(
	syncSvc *service.SyncService,
	cfg RefreshConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *RefreshScheduler {
	return &RefreshScheduler{
		syncService: syncSvc,
		interval:    cfg.Interval,
		timeout:     cfg.Timeout,
		logger:      logger,
		locker:      locker,
	}
}

// Start begins the background refresh loop.
func (s *RefreshScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting refresh scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *RefreshScheduler) Stop() {
	s.logger.Info("stopping refresh scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("refresh scheduler stopped")
}

func (s *RefreshScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeRefresh()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeRefresh()
		}
	}
}

// executeRefresh runs one locked refresh.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: lock held for the full interval so no other instance re-syncs
//   - Failure: lock released immediately so another instance can retry
func (s *RefreshScheduler) executeRefresh() {
	acquired, err := s.locker.Acquire(s.ctx, refreshLockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire refresh lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is refreshing, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	results := s.syncService.SyncAll(ctx)

	totalSynced := 0
	totalErrors := 0
	for _, r := range results {
		if r.Error != nil {
			totalErrors++
			s.logger.Warn("collection refresh failed",
				zap.String("collection", string(r.Collection)),
				zap.Error(r.Error),
			)
		} else {
			totalSynced += r.Count
		}
	}

	if totalErrors > 0 {
		if err := s.locker.Release(s.ctx, refreshLockKey); err != nil {
			s.logger.Error("failed to release lock after refresh error", zap.Error(err))
		}
		s.logger.Info("refresh completed with errors, lock released for retry",
			zap.Int("total_synced", totalSynced),
			zap.Int("collections_failed", totalErrors),
		)

		return
	}

	s.logger.Info("refresh completed successfully, lock held for cooldown",
		zap.Int("total_synced", totalSynced),
		zap.Duration("cooldown", s.interval),
	)
}
