package scoring

import (
	"fmt"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

// ValueScorer scores symbols on valuation cheapness and fundamental quality.
// A rule only runs when its metric is present and economically valid; a
// missing metric scores 0 with an explicit "not available" rationale and is
// never treated as failing the threshold.
type ValueScorer struct {
	rules  ValueRules
	logger *logger.Logger
}

// NewValueScorer creates a new value scorer.
func NewValueScorer(rules ValueRules, log *logger.Logger) *ValueScorer {
	return &ValueScorer{
		rules:  rules,
		logger: log,
	}
}

// Strategy returns the strategy identifier of this scorer.
func (s *ValueScorer) Strategy() contracts.Strategy {
	return contracts.StrategyValue
}

// Score converts a symbol's fundamentals into a 0-10 score with a per-rule
// breakdown.
//
// Point system:
//   - +3: P/E below the low threshold (default 15); +1 below 25
//   - +2: P/B below 3
//   - +2: dividend yield at or above 2%
//   - +2: ROE at or above 15%
//   - +1: debt/equity below 100%
func (s *ValueScorer) Score(f contracts.FundamentalSet) contracts.ScoreResult {
	score := 0
	breakdown := make(contracts.Breakdown, 0, 5)

	// Rule 1: low P/E. Negative earnings make the ratio meaningless.
	if f.PERatio != nil && *f.PERatio > 0 {
		pe := *f.PERatio
		switch {
		case pe < s.rules.PELowThreshold:
			score += s.rules.PELowPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "pe_ratio",
				Points:    s.rules.PELowPoints,
				Reason:    fmt.Sprintf("P/E %.1f < %.0f (very cheap)", pe, s.rules.PELowThreshold),
			})
		case pe < s.rules.PEMediumThreshold:
			score += s.rules.PEMediumPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "pe_ratio",
				Points:    s.rules.PEMediumPoints,
				Reason:    fmt.Sprintf("P/E %.1f < %.0f (acceptable)", pe, s.rules.PEMediumThreshold),
			})
		default:
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "pe_ratio",
				Points:    0,
				Reason:    fmt.Sprintf("P/E %.1f >= %.0f (expensive)", pe, s.rules.PEMediumThreshold),
			})
		}
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "pe_ratio",
			Points:    0,
			Reason:    "P/E not available or negative",
		})
	}

	// Rule 2: low price to book
	if f.PriceToBook != nil && *f.PriceToBook > 0 {
		pb := *f.PriceToBook
		if pb < s.rules.PBThreshold {
			score += s.rules.PBPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "price_to_book",
				Points:    s.rules.PBPoints,
				Reason:    fmt.Sprintf("P/B %.1f < %.0f (cheap vs assets)", pb, s.rules.PBThreshold),
			})
		} else {
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "price_to_book",
				Points:    0,
				Reason:    fmt.Sprintf("P/B %.1f >= %.0f", pb, s.rules.PBThreshold),
			})
		}
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "price_to_book",
			Points:    0,
			Reason:    "P/B not available",
		})
	}

	// Rule 3: high dividend yield
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

	// Rule 4: high ROE
	if f.ROE != nil {
		roe := *f.ROE
		if roe >= s.rules.ROEThreshold {
			score += s.rules.ROEPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "roe",
				Points:    s.rules.ROEPoints,
				Reason:    fmt.Sprintf("ROE %.1f%% >= %.0f%% (profitable)", roe*100, s.rules.ROEThreshold*100),
			})
		} else {
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "roe",
				Points:    0,
				Reason:    fmt.Sprintf("ROE %.1f%% < %.0f%%", roe*100, s.rules.ROEThreshold*100),
			})
		}
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "roe",
			Points:    0,
			Reason:    "ROE not available",
		})
	}

	// Rule 5: low debt
	if f.DebtToEquity != nil {
		debt := *f.DebtToEquity
		if debt < s.rules.DebtThreshold {
			score += s.rules.DebtPoints
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "debt",
				Points:    s.rules.DebtPoints,
				Reason:    fmt.Sprintf("debt/equity %.0f%% < %.0f%%", debt, s.rules.DebtThreshold),
			})
		} else {
			breakdown = append(breakdown, contracts.RuleOutcome{
				Criterion: "debt",
				Points:    0,
				Reason:    fmt.Sprintf("debt/equity %.0f%% >= %.0f%% (leveraged)", debt, s.rules.DebtThreshold),
			})
		}
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "debt",
			Points:    0,
			Reason:    "debt data not available",
		})
	}

	normalized := clampScore(score, 10)

	s.logger.WithFields(map[string]interface{}{
		"symbol": f.Symbol,
		"score":  normalized,
	}).Debug("Calculated value score")

	return contracts.ScoreResult{
		RawScore:  score,
		Score:     normalized,
		Breakdown: breakdown,
	}
}
