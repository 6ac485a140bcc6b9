package scoring

import (
	"fmt"
	"math"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

// DefensiveScorer scores symbols on stability and low volatility.
// Volatility is computed upstream from trailing daily returns; this scorer
// only consumes the precomputed value or its absence.
type DefensiveScorer struct {
	rules  DefensiveRules
	logger *logger.Logger
}

// NewDefensiveScorer creates a new defensive scorer.
func NewDefensiveScorer(rules DefensiveRules, log *logger.Logger) *DefensiveScorer {
	return &DefensiveScorer{
		rules:  rules,
		logger: log,
	}
}

// Strategy returns the strategy identifier of this scorer.
func (s *DefensiveScorer) Strategy() contracts.Strategy {
	return contracts.StrategyDefensive
}

// Score converts fundamentals plus a precomputed volatility into a 0-10
// score with a per-rule breakdown. volatility is nil when fewer than the
// minimum trailing return observations exist.
//
// Point system (raw maximum 11, normalized to 10):
//   - +3: beta < 0.8; +1: beta < 1.0
//   - +2: volatility < 2%; +1: < 3%
//   - +2: dividend yield >= 1.5%
//   - +2: defensive sector
//   - +2: debt/equity < 50%; +1: < 100%
func (s *DefensiveScorer) Score(f contracts.FundamentalSet, volatility *float64) contracts.ScoreResult {
	score := 0
	breakdown := make(contracts.Breakdown, 0, 5)

	// Rule 1: low beta
	if f.Beta != nil && *f.Beta > 0 {
		beta := *f.Beta
		switch {
		case beta < s.rules.BetaLowThreshold:
			score += s.rules.BetaLowPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "beta",
				Points:    s.rules.BetaLowPoints,
				Reason:    fmt.Sprintf("beta %.2f < %.1f (very stable)", beta, s.rules.BetaLowThreshold),
			})
		case beta < s.rules.BetaMediumThreshold:
			score += s.rules.BetaMediumPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "beta",
				Points:    s.rules.BetaMediumPoints,
				Reason:    fmt.Sprintf("beta %.2f < %.1f (stable)", beta, s.rules.BetaMediumThreshold),
			})
		default:
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "beta",
				Points:    0,
				Reason:    fmt.Sprintf("beta %.2f >= %.1f (volatile)", beta, s.rules.BetaMediumThreshold),
			})
		}
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "beta",
			Points:    0,
			Reason:    "beta not available",
		})
	}

	// Rule 2: low historical volatility
	if volatility != nil {
		vol := *volatility
		volPct := vol * 100
		switch {
		case vol < s.rules.VolatilityLowThreshold:
			score += s.rules.VolatilityLowPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "volatility",
				Points:    s.rules.VolatilityLowPoints,
				Reason:    fmt.Sprintf("volatility %.1f%% < %.0f%% (very low)", volPct, s.rules.VolatilityLowThreshold*100),
			})
		case vol < s.rules.VolatilityMediumThreshold:
			score += s.rules.VolatilityMediumPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "volatility",
				Points:    s.rules.VolatilityMediumPoints,
				Reason:    fmt.Sprintf("volatility %.1f%% < %.0f%% (low)", volPct, s.rules.VolatilityMediumThreshold*100),
			})
		default:
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "volatility",
				Points:    0,
				Reason:    fmt.Sprintf("volatility %.1f%% >= %.0f%% (high)", volPct, s.rules.VolatilityMediumThreshold*100),
			})
		}
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "volatility",
			Points:    0,
			Reason:    "volatility not available",
		})
	}

	// Rule 3: stable dividend income
	if f.DividendYield != nil && *f.DividendYield > 0 {
		dy := *f.DividendYield
		if dy >= s.rules.DividendThreshold {
			score += s.rules.DividendPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "dividend",
				Points:    s.rules.DividendPoints,
				Reason:    fmt.Sprintf("dividend %.1f%% >= %.1f%%", dy*100, s.rules.DividendThreshold*100),
			})
		} else {
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "dividend",
				Points:    0,
				Reason:    fmt.Sprintf("dividend %.1f%% < %.1f%%", dy*100, s.rules.DividendThreshold*100),
			})
		}
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "dividend",
			Points:    0,
			Reason:    "no dividend",
		})
	}

	// Rule 4: defensive sector
	if s.rules.IsDefensiveSector(f.Sector) {
		score += s.rules.SectorPoints
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "sector",
			Points:    s.rules.SectorPoints,
			Reason:    fmt.Sprintf("defensive sector: %s", f.Sector),
		})
	} else {
		sector := f.Sector
		if sector == "" {
			sector = "N/A"
		}
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "sector",
			Points:    0,
			Reason:    fmt.Sprintf("non-defensive sector: %s", sector),
		})
	}

	// Rule 5: low debt
	if f.DebtToEquity != nil {
		debt := *f.DebtToEquity
		switch {
		case debt < s.rules.DebtLowThreshold:
			score += s.rules.DebtLowPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "debt",
				Points:    s.rules.DebtLowPoints,
				Reason:    fmt.Sprintf("debt/equity %.0f%% < %.0f%% (very low)", debt, s.rules.DebtLowThreshold),
			})
		case debt < s.rules.DebtMediumThreshold:
			score += s.rules.DebtMediumPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "debt",
				Points:    s.rules.DebtMediumPoints,
				Reason:    fmt.Sprintf("debt/equity %.0f%% < %.0f%% (acceptable)", debt, s.rules.DebtMediumThreshold),
			})
		default:
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "debt",
				Points:    0,
				Reason:    fmt.Sprintf("debt/equity %.0f%% >= %.0f%% (high)", debt, s.rules.DebtMediumThreshold),
			})
		}
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "debt",
			Points:    0,
			Reason:    "debt data not available",
		})
	}

	// The raw maximum is 11, not 10, so the score is scaled onto the
	// canonical 0-10 range via rounding rather than clamped.
	maxRaw := s.rules.MaxScore()
	normalized := clampScore(int(math.Round(float64(score)*10/float64(maxRaw))), 10)

	s.logger.WithFields(map[string]interface{}{
		"symbol":    f.Symbol,
		"raw_score": score,
		"score":     normalized,
	}).Debug("Calculated defensive score")

	return contracts.ScoreResult{
		RawScore:  score,
		Score:     normalized,
		Breakdown: breakdown,
	}
}
