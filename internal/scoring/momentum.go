package scoring

import (
	"fmt"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

// MomentumScorer scores symbols on short-term technical strength.
// Momentum scoring happens here and nowhere else.
type MomentumScorer struct {
	rules  MomentumRules
	logger *logger.Logger
}

// NewMomentumScorer creates a new momentum scorer.
func NewMomentumScorer(rules MomentumRules, log *logger.Logger) *MomentumScorer {
	return &MomentumScorer{
		rules:  rules,
		logger: log,
	}
}

// Strategy returns the strategy identifier of this scorer.
func (s *MomentumScorer) Strategy() contracts.Strategy {
	return contracts.StrategyMomentum
}

// Score converts a symbol's technical indicators into a 0-10 score with a
// per-rule breakdown. Every rule appears in the breakdown, scored or not,
// in fixed evaluation order.
//
// Point system:
//   - +3: daily change above the threshold (default 2%)
//   - +2: volume above the trailing average
//   - +2: RSI inside the optimal band (default 50-70)
//   - +2: price above the SMA
//   - +1: bullish recent trend
func (s *MomentumScorer) Score(ind contracts.IndicatorSet) contracts.ScoreResult {
	score := 0
	breakdown := make(contracts.Breakdown, 0, 5)

	// Rule 1: significant daily change
	if ind.DailyChangePct > s.rules.DailyChangeThreshold {
		score += s.rules.DailyChangePoints
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "daily_change",
			Points:    s.rules.DailyChangePoints,
			Reason:    fmt.Sprintf("daily change %.2f%% > %.1f%%", ind.DailyChangePct, s.rules.DailyChangeThreshold),
		})
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "daily_change",
			Points:    0,
			Reason:    fmt.Sprintf("daily change %.2f%% <= %.1f%%", ind.DailyChangePct, s.rules.DailyChangeThreshold),
		})
	}

	// Rule 2: volume above average
	if ind.VolumeRatio > 1.0 {
		score += s.rules.VolumePoints
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "volume",
			Points:    s.rules.VolumePoints,
			Reason:    fmt.Sprintf("volume %.2fx the average", ind.VolumeRatio),
		})
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "volume",
			Points:    0,
			Reason:    fmt.Sprintf("volume %.2fx (below average)", ind.VolumeRatio),
		})
	}

	// Rule 3: RSI in the optimal band, inclusive on both ends
	if ind.RSI >= s.rules.RSIMin && ind.RSI <= s.rules.RSIMax {
		score += s.rules.RSIPoints
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "rsi",
			Points:    s.rules.RSIPoints,
			Reason:    fmt.Sprintf("RSI %.1f in optimal band (%.0f-%.0f)", ind.RSI, s.rules.RSIMin, s.rules.RSIMax),
		})
	} else {
		var reason string
		if ind.RSI < s.rules.RSIMin {
			reason = fmt.Sprintf("RSI %.1f below %.0f (oversold)", ind.RSI, s.rules.RSIMin)
		} else {
			reason = fmt.Sprintf("RSI %.1f above %.0f (overbought)", ind.RSI, s.rules.RSIMax)
		}
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "rsi",
			Points:    0,
			Reason:    reason,
		})
	}

	// Rule 4: price above the SMA
	if ind.AboveSMA {
		score += s.rules.AboveSMAPoints
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "sma",
			Points:    s.rules.AboveSMAPoints,
			Reason:    fmt.Sprintf("price $%.2f > SMA $%.2f", ind.Price, ind.SMA),
		})
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "sma",
			Points:    0,
			Reason:    fmt.Sprintf("price $%.2f < SMA $%.2f", ind.Price, ind.SMA),
		})
	}

	// Rule 5: bullish trend
	if ind.Trend == contracts.TrendBullish {
		score += s.rules.BullishTrendPoints
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "trend",
			Points:    s.rules.BullishTrendPoints,
			Reason:    "bullish trend over recent sessions",
		})
	} else {
		breakdown = append(breakdown, contracts.RuleOutcome{
			Criterion: "trend",
			Points:    0,
			Reason:    fmt.Sprintf("trend %s", ind.Trend),
		})
	}

	// Weights sum to 10; the clamp only matters for overridden rule tables.
	normalized := clampScore(score, 10)

	s.logger.WithFields(map[string]interface{}{
		"symbol": ind.Symbol,
		"score":  normalized,
	}).Debug("Calculated momentum score")

	return contracts.ScoreResult{
		RawScore:  score,
		Score:     normalized,
		Breakdown: breakdown,
	}
}
