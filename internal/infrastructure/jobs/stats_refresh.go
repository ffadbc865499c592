package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"profile-api.backend/internal/domain/entities"
	"profile-api.backend/pkg/logger"
)

// StatsRefresher recomputes the store aggregates and caches them.
type StatsRefresher interface {
	RefreshStats(ctx context.Context) (*entities.Stats, error)
}

// StatsRefreshJob keeps the cached /stats payload warm between writes.
type StatsRefreshJob struct {
	refresher StatsRefresher
	interval  time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewStatsRefreshJob(refresher StatsRefresher, interval time.Duration) *StatsRefreshJob {
	return &StatsRefreshJob{
		refresher: refresher,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called.
func (j *StatsRefreshJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting stats refresh job", zap.Duration("interval", j.interval))

	j.refresh(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Stats refresh job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Stats refresh job stopped")
			return
		case <-ticker.C:
			j.refresh(ctx)
		}
	}
}

func (j *StatsRefreshJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *StatsRefreshJob) refresh(ctx context.Context) {
	stats, err := j.refresher.RefreshStats(ctx)
	if err != nil {
		logger.Warn(ctx, "Stats refresh failed", zap.Error(err))
		return
	}
	logger.Debug(ctx, "Stats refreshed",
		zap.Int64("profiles", stats.TotalProfiles),
		zap.Int64("unique_skills", stats.UniqueSkills),
	)
}
