package selection

import (
	"sort"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

// Ranker orders scored entries and truncates to the requested size.
// Ranking logic lives here and nowhere else.
type Ranker struct {
	universe *contracts.Universe
	logger   *logger.Logger
}

// NewRanker creates a new ranker over a universe.
func NewRanker(universe *contracts.Universe, log *logger.Logger) *Ranker {
	return &Ranker{
		universe: universe,
		logger:   log,
	}
}

// Rank sorts entries by normalized score descending. Momentum entries break
// ties by daily change descending; value and defensive entries keep their
// input order (stable sort). Entries for symbols outside the universe are
// dropped with a warning, never a hard failure.
func (r *Ranker) Rank(entries []contracts.RankedEntry) []contracts.RankedEntry {
	ranked := make([]contracts.RankedEntry, 0, len(entries))

	for _, e := range entries {
		if !r.universe.Contains(e.Symbol) {
			r.logger.WithFields(map[string]interface{}{
				"symbol":   e.Symbol,
				"strategy": e.Strategy,
			}).Warn("Symbol not in universe, excluded from ranking")
			continue
		}
		ranked = append(ranked, e)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		// Strategy-specific tie-break: momentum favors the stronger mover.
		if ranked[i].Momentum != nil && ranked[j].Momentum != nil {
			return ranked[i].Momentum.DailyChangePct > ranked[j].Momentum.DailyChangePct
		}
		return false
	})

	r.logger.WithFields(map[string]interface{}{
		"input":  len(entries),
		"ranked": len(ranked),
	}).Debug("Ranking completed")

	return ranked
}

// TopN ranks entries and truncates to the first n. n <= 0 yields an empty
// result; an empty input batch is not an error.
func (r *Ranker) TopN(entries []contracts.RankedEntry, n int) []contracts.RankedEntry {
	ranked := r.Rank(entries)
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
