package commands

import (
	"fmt"

	"github.com/mbattaglia/cedear-screener/internal/marketdata"
	"github.com/mbattaglia/cedear-screener/internal/screener"
	"github.com/mbattaglia/cedear-screener/internal/universe"
	"github.com/mbattaglia/cedear-screener/pkg/config"
	"github.com/mbattaglia/cedear-screener/pkg/httputil"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
	"github.com/mbattaglia/cedear-screener/pkg/metrics"
	"github.com/mbattaglia/cedear-screener/pkg/redis"
)

// bootstrap loads configuration and builds the logger, honoring the
// global flags.
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if universeFile != "" {
		cfg.UniverseFile = universeFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}

// buildScreener wires the full screening service: universe config, Redis
// cache, market-data clients, scorers and ranker. The returned Redis
// client must be closed by the caller.
func buildScreener(cfg *config.Config, log *logger.Logger, recorder *metrics.Recorder) (*screener.Service, *redis.Client, error) {
	universeCfg, err := universe.Load(cfg.UniverseFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load universe: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"file":     cfg.UniverseFile,
		"listings": universeCfg.Universe.Count(),
	}).Info("Universe loaded")

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "screener")

	httpClient := httputil.New(cfg.MarketData.RequestTimeout, log).
		WithRateLimit(cfg.MarketData.RatePerSecond)
	yahooClient := marketdata.NewYahooClient(httpClient, cache, cfg.MarketData, log)
	bymaScraper := marketdata.NewBYMAScraper(httpClient, cfg.MarketData.LocalPageURL, log)

	svc := screener.New(
		universeCfg,
		yahooClient,
		yahooClient,
		yahooClient,
		screener.Options{
			LocalQuotes: bymaScraper,
			Metrics:     recorder,
			HistoryDays: cfg.MarketData.HistoryDays,
		},
		log,
	)

	return svc, redisClient, nil
}
