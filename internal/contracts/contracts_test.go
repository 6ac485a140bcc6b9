package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniverse_Contains(t *testing.T) {
	u := &Universe{Listings: map[string]Listing{
		"AAPL": {Company: "Apple Inc.", Ratio: 10},
		"KO":   {Company: "The Coca-Cola Company", Ratio: 5},
	}}

	assert.True(t, u.Contains("AAPL"))
	assert.False(t, u.Contains("XYZ"))
	assert.Equal(t, 2, u.Count())
}

func TestUniverse_SymbolsSorted(t *testing.T) {
	u := &Universe{Listings: map[string]Listing{
		"MSFT": {Company: "Microsoft Corporation", Ratio: 5},
		"AAPL": {Company: "Apple Inc.", Ratio: 10},
		"KO":   {Company: "The Coca-Cola Company", Ratio: 5},
	}}

	assert.Equal(t, []string{"AAPL", "KO", "MSFT"}, u.Symbols())
}

func TestBreakdown_Total(t *testing.T) {
	b := Breakdown{
		{Criterion: "daily_change", Points: 3, Reason: "x"},
		{Criterion: "volume", Points: 0, Reason: "y"},
		{Criterion: "rsi", Points: 2, Reason: "z"},
	}

	assert.Equal(t, 5, b.Total())

	outcome, ok := b.Get("volume")
	assert.True(t, ok)
	assert.Equal(t, 0, outcome.Points)

	_, ok = b.Get("missing")
	assert.False(t, ok)
}

func TestStrategy_Valid(t *testing.T) {
	assert.True(t, StrategyMomentum.Valid())
	assert.True(t, StrategyValue.Valid())
	assert.True(t, StrategyDefensive.Valid())
	assert.False(t, StrategyGlobal.Valid())
	assert.False(t, Strategy("swing").Valid())
}
