package contracts

// Trend classifies the recent price direction of a symbol.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// IndicatorSet holds the technical indicators computed for one symbol.
// Produced fresh per scoring request; read-only to scorers.
type IndicatorSet struct {
	Symbol         string  `json:"symbol"`
	Price          float64 `json:"price"`
	DailyChangePct float64 `json:"daily_change_pct"`
	Volume         int64   `json:"volume"`
	VolumeAvg      float64 `json:"volume_avg"`
	VolumeRatio    float64 `json:"volume_ratio"`
	RSI            float64 `json:"rsi"`
	SMA            float64 `json:"sma"`
	AboveSMA       bool    `json:"above_sma"`
	Trend          Trend   `json:"trend"`
}
