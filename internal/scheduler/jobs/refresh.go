package jobs

import (
	"context"
	"fmt"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

// Screener runs one strategy over the whole universe.
type Screener interface {
	RankAll(ctx context.Context, strategy contracts.Strategy) ([]contracts.RankedEntry, error)
}

// RefreshJob re-runs every strategy on a schedule so the market-data
// caches stay warm and API requests are served from Redis instead of
// waiting on the upstream provider.
type RefreshJob struct {
	screener Screener
	schedule string
	logger   *logger.Logger
}

// NewRefreshJob creates a cache refresh job.
func NewRefreshJob(screener Screener, schedule string, log *logger.Logger) *RefreshJob {
	if schedule == "" {
		schedule = "0 */15 * * * *" // every 15 minutes, matching the history TTL
	}
	return &RefreshJob{
		screener: screener,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name.
func (j *RefreshJob) Name() string {
	return "ranking_refresh"
}

// Schedule returns the cron expression.
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run refreshes the rankings of all strategies. A failing strategy does
// not stop the others; the job reports the first failure.
func (j *RefreshJob) Run(ctx context.Context) error {
	strategies := []contracts.Strategy{
		contracts.StrategyMomentum,
		contracts.StrategyValue,
		contracts.StrategyDefensive,
	}

	var firstErr error
	for _, strategy := range strategies {
		ranked, err := j.screener.RankAll(ctx, strategy)
		if err != nil {
			j.logger.WithError(err).WithField("strategy", strategy).Warn("Refresh failed for strategy")
			if firstErr == nil {
				firstErr = fmt.Errorf("refresh %s: %w", strategy, err)
			}
			continue
		}

		j.logger.WithFields(map[string]interface{}{
			"strategy": strategy,
			"count":    len(ranked),
		}).Info("Ranking refreshed")
	}

	return firstErr
}
