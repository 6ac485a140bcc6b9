package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

func testUniverse() *contracts.Universe {
	return &contracts.Universe{Listings: map[string]contracts.Listing{
		"AAPL": {Company: "Apple Inc.", Ratio: 10},
		"MSFT": {Company: "Microsoft Corporation", Ratio: 5},
		"KO":   {Company: "The Coca-Cola Company", Ratio: 5},
		"JNJ":  {Company: "Johnson & Johnson", Ratio: 3},
		"JPM":  {Company: "JPMorgan Chase & Co.", Ratio: 4},
	}}
}

func momentumEntry(symbol string, score int, dailyChange float64) contracts.RankedEntry {
	return contracts.RankedEntry{
		Symbol:   symbol,
		Strategy: contracts.StrategyMomentum,
		Score:    score,
		Momentum: &contracts.MomentumDisplay{DailyChangePct: dailyChange},
	}
}

func valueEntry(symbol string, score int) contracts.RankedEntry {
	return contracts.RankedEntry{
		Symbol:   symbol,
		Strategy: contracts.StrategyValue,
		Score:    score,
		Value:    &contracts.ValueDisplay{},
	}
}

func TestRanker_OrdersByScoreDescending(t *testing.T) {
	r := NewRanker(testUniverse(), logger.NewNop())

	ranked := r.Rank([]contracts.RankedEntry{
		momentumEntry("AAPL", 4, 1.0),
		momentumEntry("MSFT", 9, 0.5),
		momentumEntry("KO", 7, 2.0),
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "MSFT", ranked[0].Symbol)
	assert.Equal(t, "KO", ranked[1].Symbol)
	assert.Equal(t, "AAPL", ranked[2].Symbol)
}

func TestRanker_MomentumTieBreakByDailyChange(t *testing.T) {
	r := NewRanker(testUniverse(), logger.NewNop())

	ranked := r.Rank([]contracts.RankedEntry{
		momentumEntry("AAPL", 7, 0.5),
		momentumEntry("MSFT", 7, 3.2),
		momentumEntry("KO", 7, 1.1),
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "MSFT", ranked[0].Symbol)
	assert.Equal(t, "KO", ranked[1].Symbol)
	assert.Equal(t, "AAPL", ranked[2].Symbol)
}

func TestRanker_ValueTieKeepsInputOrder(t *testing.T) {
	r := NewRanker(testUniverse(), logger.NewNop())

	ranked := r.Rank([]contracts.RankedEntry{
		valueEntry("KO", 6),
		valueEntry("JNJ", 6),
		valueEntry("JPM", 6),
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "KO", ranked[0].Symbol)
	assert.Equal(t, "JNJ", ranked[1].Symbol)
	assert.Equal(t, "JPM", ranked[2].Symbol)
}

func TestRanker_DropsSymbolsOutsideUniverse(t *testing.T) {
	r := NewRanker(testUniverse(), logger.NewNop())

	ranked := r.Rank([]contracts.RankedEntry{
		momentumEntry("AAPL", 5, 1.0),
		momentumEntry("GME", 10, 9.9), // not in universe
	})

	require.Len(t, ranked, 1)
	assert.Equal(t, "AAPL", ranked[0].Symbol)
}

func TestRanker_Deterministic(t *testing.T) {
	r := NewRanker(testUniverse(), logger.NewNop())

	batch := []contracts.RankedEntry{
		valueEntry("JPM", 8),
		valueEntry("KO", 8),
		valueEntry("AAPL", 3),
		valueEntry("JNJ", 8),
	}

	first := r.Rank(batch)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Rank(batch))
	}
}

func TestRanker_TopN(t *testing.T) {
	r := NewRanker(testUniverse(), logger.NewNop())

	entries := []contracts.RankedEntry{
		momentumEntry("AAPL", 4, 0),
		momentumEntry("MSFT", 9, 0),
		momentumEntry("KO", 7, 0),
	}

	top := r.TopN(entries, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "MSFT", top[0].Symbol)

	assert.Len(t, r.TopN(entries, 10), 3, "n larger than input returns everything")
	assert.Empty(t, r.TopN(entries, 0))
}

func TestRanker_EmptyInput(t *testing.T) {
	r := NewRanker(testUniverse(), logger.NewNop())

	assert.Empty(t, r.Rank(nil))
	assert.Empty(t, r.TopN(nil, 5))
}
