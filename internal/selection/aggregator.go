package selection

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

// Aggregator surfaces symbols ranked highly across several strategies.
// A "global" symbol is one appearing in the top window of at least two
// strategy rankings.
type Aggregator struct {
	window int // entries taken from the top of each strategy ranking
	logger *logger.Logger
}

// DefaultWindow is how many entries of each strategy ranking the
// aggregator inspects.
const DefaultWindow = 10

// minCandidates is the smallest multi-strategy candidate set the
// aggregator accepts before falling back to per-strategy leaders.
const minCandidates = 3

// NewAggregator creates a new cross-strategy aggregator.
func NewAggregator(window int, log *logger.Logger) *Aggregator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Aggregator{
		window: window,
		logger: log,
	}
}

// Aggregate merges the three strategy rankings into a combined list of at
// most maxResults entries. Symbols in at least two strategy windows get a
// combined score of min(10, round(mean of their per-strategy scores) + one
// bonus point per extra strategy). When fewer than three such symbols
// exist the per-strategy leaders are combined instead, backfilled from the
// momentum ranking. No symbol is ever emitted twice.
func (a *Aggregator) Aggregate(momentum, value, defensive []contracts.RankedEntry, maxResults int) []contracts.RankedEntry {
	windows := []struct {
		strategy contracts.Strategy
		entries  []contracts.RankedEntry
	}{
		{contracts.StrategyMomentum, head(momentum, a.window)},
		{contracts.StrategyValue, head(value, a.window)},
		{contracts.StrategyDefensive, head(defensive, a.window)},
	}

	// Count window appearances per symbol, keeping first-appearance order
	// for deterministic output.
	byStrategy := make(map[string]map[contracts.Strategy]contracts.RankedEntry)
	var order []string
	for _, w := range windows {
		for _, e := range w.entries {
			if _, seen := byStrategy[e.Symbol]; !seen {
				byStrategy[e.Symbol] = make(map[contracts.Strategy]contracts.RankedEntry, 3)
				order = append(order, e.Symbol)
			}
			byStrategy[e.Symbol][w.strategy] = e
		}
	}

	var candidates []string
	for _, symbol := range order {
		if len(byStrategy[symbol]) >= 2 {
			candidates = append(candidates, symbol)
		}
	}

	if len(candidates) < minCandidates {
		a.logger.WithFields(map[string]interface{}{
			"candidates": len(candidates),
		}).Info("Too few multi-strategy symbols, combining strategy leaders")
		return a.combineLeaders(momentum, value, defensive, maxResults)
	}

	a.logger.WithFields(map[string]interface{}{
		"candidates": candidates,
	}).Info("Multi-strategy symbols found")

	results := make([]contracts.RankedEntry, 0, len(candidates))
	for _, symbol := range candidates {
		results = append(results, a.buildCombined(symbol, byStrategy[symbol]))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return head(results, maxResults)
}

// buildCombined assembles the aggregated entry for one multi-strategy
// symbol.
func (a *Aggregator) buildCombined(symbol string, entries map[contracts.Strategy]contracts.RankedEntry) contracts.RankedEntry {
	// Fixed priority order for both display-field sourcing and breakdowns.
	priority := []contracts.Strategy{
		contracts.StrategyMomentum,
		contracts.StrategyValue,
		contracts.StrategyDefensive,
	}

	var (
		scoreSum   int
		strategies []contracts.Strategy
		breakdown  contracts.Breakdown
		base       *contracts.RankedEntry
	)

	for _, strategy := range priority {
		e, ok := entries[strategy]
		if !ok {
			continue
		}

		scoreSum += e.Score
		strategies = append(strategies, strategy)
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: string(strategy),
			Points:    e.Score,
			Reason:    fmt.Sprintf("top ranked in %s (score %d)", strategy, e.Score),
		})

		if base == nil {
			b := e
			base = &b
		}
	}

	count := len(strategies)
	// Half-value means round to even: scores 6 and 7 average to 6, not 7.
	avgScore := int(math.RoundToEven(float64(scoreSum) / float64(count)))
	combined := avgScore + count - 1
	if combined > 10 {
		combined = 10
	}

	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = string(s)
	}
	// The bonus entry reports the points actually added to the score.
	breakdown = append(breakdown, contracts.RuleOutcome{
		Criterion: "multi_strategy_bonus",
		Points:    count - 1,
		Reason:    fmt.Sprintf("appears in %d strategies: %s", count, strings.Join(names, ", ")),
	})

	return contracts.RankedEntry{
		Symbol:   symbol,
		Company:  base.Company,
		Ratio:    base.Ratio,
		Strategy: contracts.StrategyGlobal,
		Score:    combined,
		Price:    base.Price,
		Global: &contracts.GlobalDisplay{
			Strategies: strategies,
			AvgScore:   avgScore,
		},
		Local:     base.Local,
		Breakdown: breakdown,
	}
}

// combineLeaders is the fallback when too few symbols span multiple
// strategies: greedily pick each strategy's top symbol (skipping symbols
// already chosen, in the strategies' pre-established order), then backfill
// from the momentum ranking.
func (a *Aggregator) combineLeaders(momentum, value, defensive []contracts.RankedEntry, maxResults int) []contracts.RankedEntry {
	combined := make([]contracts.RankedEntry, 0, maxResults)
	seen := make(map[string]bool)

	for _, ranking := range [][]contracts.RankedEntry{momentum, value, defensive} {
		for _, e := range ranking {
			if !seen[e.Symbol] {
				combined = append(combined, e)
				seen[e.Symbol] = true
				break
			}
		}
	}

	for _, e := range momentum {
		if len(combined) >= maxResults {
			break
		}
		if !seen[e.Symbol] {
			combined = append(combined, e)
			seen[e.Symbol] = true
		}
	}

	return head(combined, maxResults)
}

// head returns at most n leading entries of a ranking.
func head(entries []contracts.RankedEntry, n int) []contracts.RankedEntry {
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
