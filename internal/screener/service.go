package screener

import (
	"context"
	"fmt"
	"math"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/internal/marketdata"
	"github.com/mbattaglia/cedear-screener/internal/scoring"
	"github.com/mbattaglia/cedear-screener/internal/selection"
	"github.com/mbattaglia/cedear-screener/internal/universe"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
	"github.com/mbattaglia/cedear-screener/pkg/metrics"
)

// Service orchestrates one screening pass: gather market data for the
// universe, score each symbol under the requested strategy, rank, and
// enrich the winners with listing data and local quotes.
type Service struct {
	cfg *universe.Config

	indicators   marketdata.IndicatorProvider
	fundamentals marketdata.FundamentalProvider
	history      marketdata.HistoryProvider
	localQuotes  marketdata.LocalQuoteProvider // optional

	momentum  *scoring.MomentumScorer
	value     *scoring.ValueScorer
	defensive *scoring.DefensiveScorer

	ranker     *selection.Ranker
	aggregator *selection.Aggregator

	historyDays int
	metrics     *metrics.Recorder
	logger      *logger.Logger
}

// Options carries the optional collaborators of the service.
type Options struct {
	LocalQuotes marketdata.LocalQuoteProvider
	Metrics     *metrics.Recorder
	HistoryDays int
}

// New creates a screener service over the given universe configuration
// and data providers.
func New(
	cfg *universe.Config,
	indicators marketdata.IndicatorProvider,
	fundamentals marketdata.FundamentalProvider,
	history marketdata.HistoryProvider,
	opts Options,
	log *logger.Logger,
) *Service {
	historyDays := opts.HistoryDays
	if historyDays <= 0 {
		historyDays = 60
	}

	return &Service{
		cfg:          cfg,
		indicators:   indicators,
		fundamentals: fundamentals,
		history:      history,
		localQuotes:  opts.LocalQuotes,
		momentum:     scoring.NewMomentumScorer(cfg.Momentum, log),
		value:        scoring.NewValueScorer(cfg.Value, log),
		defensive:    scoring.NewDefensiveScorer(cfg.Defensive, log),
		ranker:       selection.NewRanker(cfg.Universe, log),
		aggregator:   selection.NewAggregator(selection.DefaultWindow, log),
		historyDays:  historyDays,
		metrics:      opts.Metrics,
		logger:       log,
	}
}

// Universe returns the configured listing universe.
func (s *Service) Universe() *contracts.Universe {
	return s.cfg.Universe
}

// TopN runs the given strategy over the whole universe and returns the
// top n entries, enriched with local quotes.
func (s *Service) TopN(ctx context.Context, strategy contracts.Strategy, n int) ([]contracts.RankedEntry, error) {
	ranked, err := s.RankAll(ctx, strategy)
	if err != nil {
		return nil, err
	}

	top := ranked
	if n > 0 && n < len(top) {
		top = top[:n]
	}

	s.enrichLocalQuotes(ctx, top)
	return top, nil
}

// RankAll scores and ranks the whole universe under one strategy.
// The global pseudo-strategy runs all three and aggregates.
func (s *Service) RankAll(ctx context.Context, strategy contracts.Strategy) ([]contracts.RankedEntry, error) {
	switch strategy {
	case contracts.StrategyMomentum:
		return s.rankMomentum(ctx)
	case contracts.StrategyValue:
		return s.rankValue(ctx)
	case contracts.StrategyDefensive:
		return s.rankDefensive(ctx)
	case contracts.StrategyGlobal:
		return s.rankGlobal(ctx)
	default:
		return nil, fmt.Errorf("unknown strategy: %q", strategy)
	}
}

func (s *Service) rankMomentum(ctx context.Context) ([]contracts.RankedEntry, error) {
	indicators, err := s.indicators.GetIndicators(ctx, s.cfg.Universe.Symbols())
	if err != nil {
		s.recordProviderError("indicators")
		return nil, fmt.Errorf("get indicators: %w", err)
	}

	// Symbol order must not depend on map iteration: the stable sort in
	// the ranker preserves input order for ties.
	entries := make([]contracts.RankedEntry, 0, len(indicators))
	for _, symbol := range s.cfg.Universe.Symbols() {
		ind, ok := indicators[symbol]
		if !ok {
			continue
		}
		result := s.momentum.Score(ind)
		entry := s.newEntry(symbol, contracts.StrategyMomentum, result, ind.Price)
		entry.Momentum = &contracts.MomentumDisplay{
			DailyChangePct: ind.DailyChangePct,
			VolumeRatio:    ind.VolumeRatio,
			RSI:            ind.RSI,
			Trend:          ind.Trend,
		}
		entries = append(entries, entry)
	}

	s.recordScored(contracts.StrategyMomentum, len(entries))
	return s.ranker.Rank(entries), nil
}

func (s *Service) rankValue(ctx context.Context) ([]contracts.RankedEntry, error) {
	fundamentals, err := s.fundamentals.GetFundamentals(ctx, s.cfg.Universe.Symbols())
	if err != nil {
		s.recordProviderError("fundamentals")
		return nil, fmt.Errorf("get fundamentals: %w", err)
	}

	entries := make([]contracts.RankedEntry, 0, len(fundamentals))
	for _, symbol := range s.cfg.Universe.Symbols() {
		f, ok := fundamentals[symbol]
		if !ok {
			continue
		}
		result := s.value.Score(f)
		entry := s.newEntry(symbol, contracts.StrategyValue, result, f.Price)
		entry.Value = &contracts.ValueDisplay{
			PERatio:          deref(f.PERatio),
			PriceToBook:      deref(f.PriceToBook),
			DividendYieldPct: round2(deref(f.DividendYield) * 100),
		}
		entries = append(entries, entry)
	}

	s.recordScored(contracts.StrategyValue, len(entries))
	return s.ranker.Rank(entries), nil
}

func (s *Service) rankDefensive(ctx context.Context) ([]contracts.RankedEntry, error) {
	fundamentals, err := s.fundamentals.GetFundamentals(ctx, s.cfg.Universe.Symbols())
	if err != nil {
		s.recordProviderError("fundamentals")
		return nil, fmt.Errorf("get fundamentals: %w", err)
	}

	entries := make([]contracts.RankedEntry, 0, len(fundamentals))
	for _, symbol := range s.cfg.Universe.Symbols() {
		f, ok := fundamentals[symbol]
		if !ok {
			continue
		}
		volatility := s.volatilityOf(ctx, symbol)

		result := s.defensive.Score(f, volatility)
		entry := s.newEntry(symbol, contracts.StrategyDefensive, result, f.Price)
		entry.Defensive = &contracts.DefensiveDisplay{
			Beta:             deref(f.Beta),
			VolatilityPct:    round2(deref(volatility) * 100),
			DividendYieldPct: round2(deref(f.DividendYield) * 100),
			Sector:           f.Sector,
		}
		entries = append(entries, entry)
	}

	s.recordScored(contracts.StrategyDefensive, len(entries))
	return s.ranker.Rank(entries), nil
}

func (s *Service) rankGlobal(ctx context.Context) ([]contracts.RankedEntry, error) {
	momentum, err := s.rankMomentum(ctx)
	if err != nil {
		return nil, err
	}
	value, err := s.rankValue(ctx)
	if err != nil {
		return nil, err
	}
	defensive, err := s.rankDefensive(ctx)
	if err != nil {
		return nil, err
	}

	combined := s.aggregator.Aggregate(momentum, value, defensive, s.cfg.Universe.Count())
	s.recordScored(contracts.StrategyGlobal, len(combined))
	return combined, nil
}

// volatilityOf computes the historical volatility of one symbol. A
// missing history degrades to nil, which the defensive scorer treats as
// missing data.
func (s *Service) volatilityOf(ctx context.Context, symbol string) *float64 {
	candles, err := s.history.GetHistory(ctx, symbol, s.historyDays)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("Volatility unavailable: no history")
		return nil
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return marketdata.Volatility(closes)
}

// newEntry builds a ranked entry with the listing data of the universe.
func (s *Service) newEntry(symbol string, strategy contracts.Strategy, result contracts.ScoreResult, price float64) contracts.RankedEntry {
	entry := contracts.RankedEntry{
		Symbol:    symbol,
		Strategy:  strategy,
		Score:     result.Score,
		Price:     price,
		Breakdown: result.Breakdown,
	}

	if listing, ok := s.cfg.Universe.Get(symbol); ok {
		entry.Company = listing.Company
		entry.Ratio = listing.Ratio
	}

	return entry
}

// enrichLocalQuotes attaches peso and dollar CEDEAR quotes to the final
// entries. Enrichment failures are logged and ignored.
func (s *Service) enrichLocalQuotes(ctx context.Context, entries []contracts.RankedEntry) {
	if s.localQuotes == nil || len(entries) == 0 {
		return
	}

	symbols := make([]string, len(entries))
	for i, e := range entries {
		symbols[i] = e.Symbol
	}

	quotes, err := s.localQuotes.GetLocalQuotes(ctx, symbols)
	if err != nil {
		s.recordProviderError("local_quotes")
		s.logger.WithError(err).Warn("Local quote enrichment failed")
		return
	}

	for i := range entries {
		if quote, ok := quotes[entries[i].Symbol]; ok {
			q := quote
			entries[i].Local = &q
		}
	}
}

func (s *Service) recordScored(strategy contracts.Strategy, count int) {
	if s.metrics != nil {
		s.metrics.RecordScored(string(strategy), count)
	}
}

func (s *Service) recordProviderError(source string) {
	if s.metrics != nil {
		s.metrics.RecordProviderError(source)
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
