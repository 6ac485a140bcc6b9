package contracts

// Strategy identifies a screening strategy.
type Strategy string

const (
	StrategyMomentum  Strategy = "momentum"
	StrategyValue     Strategy = "value"
	StrategyDefensive Strategy = "defensive"
	StrategyGlobal    Strategy = "global"
)

// Valid reports whether s is one of the single-strategy identifiers.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyMomentum, StrategyValue, StrategyDefensive:
		return true
	}
	return false
}

// MomentumDisplay carries the momentum-specific display fields.
type MomentumDisplay struct {
	DailyChangePct float64 `json:"daily_change_pct"`
	VolumeRatio    float64 `json:"volume_ratio"`
	RSI            float64 `json:"rsi"`
	Trend          Trend   `json:"trend"`
}

// ValueDisplay carries the value-specific display fields.
type ValueDisplay struct {
	PERatio          float64 `json:"pe_ratio"`
	PriceToBook      float64 `json:"price_to_book"`
	DividendYieldPct float64 `json:"dividend_yield_pct"`
}

// DefensiveDisplay carries the defensive-specific display fields.
type DefensiveDisplay struct {
	Beta             float64 `json:"beta"`
	VolatilityPct    float64 `json:"volatility_pct"`
	DividendYieldPct float64 `json:"dividend_yield_pct"`
	Sector           string  `json:"sector,omitempty"`
}

// GlobalDisplay carries the cross-strategy aggregation display fields.
type GlobalDisplay struct {
	Strategies []Strategy `json:"strategies"`
	AvgScore   int        `json:"avg_score"`
}

// LocalQuote carries the peso/dollar CEDEAR prices from the local exchange.
type LocalQuote struct {
	PriceARS          *float64 `json:"price_ars,omitempty"`
	DailyChangePctARS *float64 `json:"daily_change_pct_ars,omitempty"`
	PriceUSD          *float64 `json:"price_usd,omitempty"`
	DailyChangePctUSD *float64 `json:"daily_change_pct_usd,omitempty"`
}

// RankedEntry is one scored symbol as consumed by the ranker and the
// cross-strategy aggregator. Never mutated after creation. Exactly one of
// the per-strategy display structs is set, matching Strategy.
type RankedEntry struct {
	Symbol   string   `json:"symbol"`
	Company  string   `json:"company"`
	Ratio    int      `json:"ratio"`
	Strategy Strategy `json:"strategy"`
	Score    int      `json:"score"` // normalized [0,10]
	Price    float64  `json:"price"`

	Momentum  *MomentumDisplay  `json:"momentum,omitempty"`
	Value     *ValueDisplay     `json:"value,omitempty"`
	Defensive *DefensiveDisplay `json:"defensive,omitempty"`
	Global    *GlobalDisplay    `json:"global,omitempty"`

	Local *LocalQuote `json:"local,omitempty"`

	Breakdown Breakdown `json:"breakdown,omitempty"`
}
