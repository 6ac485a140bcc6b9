package scoring

// Rule tables for the three strategies. Each table is an immutable value
// passed into its scorer at construction; scorers never share mutable state.
// The point weights of momentum and value are designed to sum to exactly 10,
// defensive tops out at 11 and is normalized back onto the 0-10 scale.

// MomentumRules holds the thresholds and points of the momentum strategy.
type MomentumRules struct {
	DailyChangeThreshold float64 `yaml:"daily_change_threshold" json:"daily_change_threshold"` // percent
	DailyChangePoints    int     `yaml:"daily_change_points" json:"daily_change_points"`

	VolumePoints int `yaml:"volume_points" json:"volume_points"` // volume ratio > 1.0

	RSIMin    float64 `yaml:"rsi_min" json:"rsi_min"`
	RSIMax    float64 `yaml:"rsi_max" json:"rsi_max"`
	RSIPoints int     `yaml:"rsi_points" json:"rsi_points"`

	AboveSMAPoints int `yaml:"above_sma_points" json:"above_sma_points"`

	BullishTrendPoints int `yaml:"bullish_trend_points" json:"bullish_trend_points"`
}

// DefaultMomentumRules returns the default momentum rule table.
func DefaultMomentumRules() MomentumRules {
	return MomentumRules{
		DailyChangeThreshold: 2.0,
		DailyChangePoints:    3,
		VolumePoints:         2,
		RSIMin:               50,
		RSIMax:               70,
		RSIPoints:            2,
		AboveSMAPoints:       2,
		BullishTrendPoints:   1,
	}
}

// MaxScore returns the sum of all momentum rule points.
func (r MomentumRules) MaxScore() int {
	return r.DailyChangePoints + r.VolumePoints + r.RSIPoints +
		r.AboveSMAPoints + r.BullishTrendPoints
}

// ValueRules holds the thresholds and points of the value strategy.
type ValueRules struct {
	PELowThreshold    float64 `yaml:"pe_low_threshold" json:"pe_low_threshold"`
	PEMediumThreshold float64 `yaml:"pe_medium_threshold" json:"pe_medium_threshold"`
	PELowPoints       int     `yaml:"pe_low_points" json:"pe_low_points"`
	PEMediumPoints    int     `yaml:"pe_medium_points" json:"pe_medium_points"`

	PBThreshold float64 `yaml:"pb_threshold" json:"pb_threshold"`
	PBPoints    int     `yaml:"pb_points" json:"pb_points"`

	DividendThreshold float64 `yaml:"dividend_threshold" json:"dividend_threshold"` // decimal
	DividendPoints    int     `yaml:"dividend_points" json:"dividend_points"`

	ROEThreshold float64 `yaml:"roe_threshold" json:"roe_threshold"` // decimal
	ROEPoints    int     `yaml:"roe_points" json:"roe_points"`

	DebtThreshold float64 `yaml:"debt_threshold" json:"debt_threshold"` // percent
	DebtPoints    int     `yaml:"debt_points" json:"debt_points"`
}

// DefaultValueRules returns the default value rule table.
func DefaultValueRules() ValueRules {
	return ValueRules{
		PELowThreshold:    15,
		PEMediumThreshold: 25,
		PELowPoints:       3,
		PEMediumPoints:    1,
		PBThreshold:       3,
		PBPoints:          2,
		DividendThreshold: 0.02,
		DividendPoints:    2,
		ROEThreshold:      0.15,
		ROEPoints:         2,
		DebtThreshold:     100,
		DebtPoints:        1,
	}
}

// MaxScore returns the sum of all value rule points.
func (r ValueRules) MaxScore() int {
	return r.PELowPoints + r.PBPoints + r.DividendPoints + r.ROEPoints + r.DebtPoints
}

// DefensiveRules holds the thresholds and points of the defensive strategy.
type DefensiveRules struct {
	BetaLowThreshold    float64 `yaml:"beta_low_threshold" json:"beta_low_threshold"`
	BetaMediumThreshold float64 `yaml:"beta_medium_threshold" json:"beta_medium_threshold"`
	BetaLowPoints       int     `yaml:"beta_low_points" json:"beta_low_points"`
	BetaMediumPoints    int     `yaml:"beta_medium_points" json:"beta_medium_points"`

	VolatilityLowThreshold    float64 `yaml:"volatility_low_threshold" json:"volatility_low_threshold"`       // decimal
	VolatilityMediumThreshold float64 `yaml:"volatility_medium_threshold" json:"volatility_medium_threshold"` // decimal
	VolatilityLowPoints       int     `yaml:"volatility_low_points" json:"volatility_low_points"`
	VolatilityMediumPoints    int     `yaml:"volatility_medium_points" json:"volatility_medium_points"`

	DividendThreshold float64 `yaml:"dividend_threshold" json:"dividend_threshold"` // decimal
	DividendPoints    int     `yaml:"dividend_points" json:"dividend_points"`

	DefensiveSectors []string `yaml:"defensive_sectors" json:"defensive_sectors"`
	SectorPoints     int      `yaml:"sector_points" json:"sector_points"`

	DebtLowThreshold    float64 `yaml:"debt_low_threshold" json:"debt_low_threshold"`       // percent
	DebtMediumThreshold float64 `yaml:"debt_medium_threshold" json:"debt_medium_threshold"` // percent
	DebtLowPoints       int     `yaml:"debt_low_points" json:"debt_low_points"`
	DebtMediumPoints    int     `yaml:"debt_medium_points" json:"debt_medium_points"`
}

// DefaultDefensiveRules returns the default defensive rule table.
func DefaultDefensiveRules() DefensiveRules {
	return DefensiveRules{
		BetaLowThreshold:          0.8,
		BetaMediumThreshold:       1.0,
		BetaLowPoints:             3,
		BetaMediumPoints:          1,
		VolatilityLowThreshold:    0.02,
		VolatilityMediumThreshold: 0.03,
		VolatilityLowPoints:       2,
		VolatilityMediumPoints:    1,
		DividendThreshold:         0.015,
		DividendPoints:            2,
		DefensiveSectors: []string{
			"Consumer Defensive",
			"Healthcare",
			"Utilities",
			"Consumer Staples",
			"Health Care",
		},
		SectorPoints:        2,
		DebtLowThreshold:    50,
		DebtMediumThreshold: 100,
		DebtLowPoints:       2,
		DebtMediumPoints:    1,
	}
}

// MaxScore returns the maximum raw defensive score. The weights are chosen
// so this is 11, which is why defensive scores need an explicit
// normalization step instead of the plain ceiling clamp.
func (r DefensiveRules) MaxScore() int {
	return r.BetaLowPoints + r.VolatilityLowPoints + r.DividendPoints +
		r.SectorPoints + r.DebtLowPoints
}

// IsDefensiveSector checks sector membership in the defensive sector set.
func (r DefensiveRules) IsDefensiveSector(sector string) bool {
	for _, s := range r.DefensiveSectors {
		if s == sector {
			return true
		}
	}
	return false
}

func clampScore(score, max int) int {
	if score > max {
		return max
	}
	if score < 0 {
		return 0
	}
	return score
}
