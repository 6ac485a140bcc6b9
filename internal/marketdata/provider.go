package marketdata

import (
	"context"
	"time"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
)

// Candle is one daily OHLCV bar of an underlying symbol.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// HistoryProvider fetches daily price history for a symbol.
type HistoryProvider interface {
	GetHistory(ctx context.Context, symbol string, days int) ([]Candle, error)
}

// IndicatorProvider computes technical indicators for a set of symbols.
// Symbols that fail to resolve are omitted from the result, never
// zero-filled.
type IndicatorProvider interface {
	GetIndicators(ctx context.Context, symbols []string) (map[string]contracts.IndicatorSet, error)
}

// FundamentalProvider fetches fundamental metrics for a set of symbols.
// Missing individual metrics come back as nil pointers.
type FundamentalProvider interface {
	GetFundamentals(ctx context.Context, symbols []string) (map[string]contracts.FundamentalSet, error)
}

// LocalQuoteProvider fetches CEDEAR prices on the local exchange, in ARS
// and USD. Local quotes are display enrichment; a failure here never
// blocks scoring.
type LocalQuoteProvider interface {
	GetLocalQuotes(ctx context.Context, symbols []string) (map[string]contracts.LocalQuote, error)
}
