package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

func entry(symbol string, strategy contracts.Strategy, score int) contracts.RankedEntry {
	e := contracts.RankedEntry{
		Symbol:   symbol,
		Company:  symbol + " Corp.",
		Strategy: strategy,
		Score:    score,
		Price:    100,
	}
	switch strategy {
	case contracts.StrategyMomentum:
		e.Momentum = &contracts.MomentumDisplay{}
	case contracts.StrategyValue:
		e.Value = &contracts.ValueDisplay{}
	case contracts.StrategyDefensive:
		e.Defensive = &contracts.DefensiveDisplay{}
	}
	return e
}

func ranking(strategy contracts.Strategy, scored ...struct {
	symbol string
	score  int
}) []contracts.RankedEntry {
	out := make([]contracts.RankedEntry, 0, len(scored))
	for _, s := range scored {
		out = append(out, entry(s.symbol, strategy, s.score))
	}
	return out
}

func sym(symbol string, score int) struct {
	symbol string
	score  int
} {
	return struct {
		symbol string
		score  int
	}{symbol, score}
}

func TestAggregator_MultiStrategyBonus(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	// A appears in all three, B and C in two each.
	momentum := ranking(contracts.StrategyMomentum, sym("A", 8), sym("B", 7), sym("X", 5))
	value := ranking(contracts.StrategyValue, sym("A", 6), sym("C", 9), sym("B", 4))
	defensive := ranking(contracts.StrategyDefensive, sym("A", 7), sym("C", 5), sym("Y", 3))

	results := a.Aggregate(momentum, value, defensive, 6)
	require.NotEmpty(t, results)

	bySymbol := make(map[string]contracts.RankedEntry)
	for _, r := range results {
		bySymbol[r.Symbol] = r
	}

	// A: avg = round((8+6+7)/3) = 7, bonus +2 -> 9
	A, ok := bySymbol["A"]
	require.True(t, ok)
	assert.Equal(t, 9, A.Score)
	assert.Equal(t, contracts.StrategyGlobal, A.Strategy)
	require.NotNil(t, A.Global)
	assert.Equal(t, 7, A.Global.AvgScore)
	assert.Equal(t, []contracts.Strategy{
		contracts.StrategyMomentum,
		contracts.StrategyValue,
		contracts.StrategyDefensive,
	}, A.Global.Strategies)

	// B: avg = round((7+4)/2) = 6, bonus +1 -> 7
	B, ok := bySymbol["B"]
	require.True(t, ok)
	assert.Equal(t, 7, B.Score)

	// C: avg = round((9+5)/2) = 7, bonus +1 -> 8
	C, ok := bySymbol["C"]
	require.True(t, ok)
	assert.Equal(t, 8, C.Score)

	// Ordered by combined score descending.
	assert.Equal(t, "A", results[0].Symbol)
	assert.Equal(t, "C", results[1].Symbol)
	assert.Equal(t, "B", results[2].Symbol)
}

func TestAggregator_HalfValueMeansRoundToEven(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	momentum := ranking(contracts.StrategyMomentum, sym("A", 6), sym("B", 7), sym("C", 5))
	value := ranking(contracts.StrategyValue, sym("A", 7), sym("B", 8), sym("C", 6))

	results := a.Aggregate(momentum, value, nil, 6)
	require.Len(t, results, 3)

	bySymbol := make(map[string]contracts.RankedEntry)
	for _, r := range results {
		bySymbol[r.Symbol] = r
	}

	// A: mean(6,7) = 6.5 rounds down to 6, bonus +1 -> 7
	require.NotNil(t, bySymbol["A"].Global)
	assert.Equal(t, 6, bySymbol["A"].Global.AvgScore)
	assert.Equal(t, 7, bySymbol["A"].Score)

	// B: mean(7,8) = 7.5 rounds up to 8, bonus +1 -> 9
	require.NotNil(t, bySymbol["B"].Global)
	assert.Equal(t, 8, bySymbol["B"].Global.AvgScore)
	assert.Equal(t, 9, bySymbol["B"].Score)

	// C: mean(5,6) = 5.5 rounds up to 6, bonus +1 -> 7
	require.NotNil(t, bySymbol["C"].Global)
	assert.Equal(t, 6, bySymbol["C"].Global.AvgScore)
	assert.Equal(t, 7, bySymbol["C"].Score)
}

func TestAggregator_CombinedScoreCappedAtTen(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	momentum := ranking(contracts.StrategyMomentum, sym("A", 10), sym("B", 10), sym("C", 10))
	value := ranking(contracts.StrategyValue, sym("A", 10), sym("B", 10), sym("C", 10))
	defensive := ranking(contracts.StrategyDefensive, sym("A", 10), sym("B", 10), sym("C", 10))

	results := a.Aggregate(momentum, value, defensive, 6)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, 10, r.Score)
	}
}

func TestAggregator_Breakdown(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	momentum := ranking(contracts.StrategyMomentum, sym("A", 8), sym("B", 7), sym("C", 6))
	value := ranking(contracts.StrategyValue, sym("A", 6), sym("B", 5), sym("C", 4))
	defensive := ranking(contracts.StrategyDefensive, sym("A", 7), sym("B", 3), sym("C", 2))

	results := a.Aggregate(momentum, value, defensive, 6)
	require.NotEmpty(t, results)

	A := results[0]
	require.Equal(t, "A", A.Symbol)
	require.Len(t, A.Breakdown, 4, "one entry per strategy plus the bonus")

	mo, ok := A.Breakdown.Get("momentum")
	require.True(t, ok)
	assert.Equal(t, 8, mo.Points)

	bonus, ok := A.Breakdown.Get("multi_strategy_bonus")
	require.True(t, ok)
	assert.Equal(t, 2, bonus.Points, "bonus entry reports the points actually added, one per extra strategy")
	assert.Contains(t, bonus.Reason, "3 strategies")
	assert.Contains(t, bonus.Reason, "momentum")
}

func TestAggregator_BaseFieldsFromMomentumFirst(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	mo := entry("A", contracts.StrategyMomentum, 8)
	mo.Price = 185.50
	val := entry("A", contracts.StrategyValue, 6)
	val.Price = 180.00

	momentum := []contracts.RankedEntry{mo, entry("B", contracts.StrategyMomentum, 7), entry("C", contracts.StrategyMomentum, 6)}
	value := []contracts.RankedEntry{val, entry("B", contracts.StrategyValue, 5), entry("C", contracts.StrategyValue, 4)}
	defensive := ranking(contracts.StrategyDefensive, sym("A", 7), sym("B", 3), sym("C", 2))

	results := a.Aggregate(momentum, value, defensive, 6)
	require.NotEmpty(t, results)
	assert.Equal(t, 185.50, results[0].Price, "display fields come from the momentum entry")
}

func TestAggregator_FallbackToStrategyLeaders(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	// No overlap at all: fallback must pick each strategy's leader.
	momentum := ranking(contracts.StrategyMomentum, sym("M1", 9), sym("M2", 8), sym("M3", 7))
	value := ranking(contracts.StrategyValue, sym("V1", 9), sym("V2", 8))
	defensive := ranking(contracts.StrategyDefensive, sym("D1", 9), sym("D2", 8))

	results := a.Aggregate(momentum, value, defensive, 4)
	require.Len(t, results, 4)

	assert.Equal(t, "M1", results[0].Symbol)
	assert.Equal(t, "V1", results[1].Symbol)
	assert.Equal(t, "D1", results[2].Symbol)
	// Backfill comes from the momentum ranking in order.
	assert.Equal(t, "M2", results[3].Symbol)
}

func TestAggregator_FallbackSkipsClaimedLeaders(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	// The value #1 is already claimed by momentum; fallback takes value #2.
	// Only one multi-strategy symbol exists, so the fallback path runs.
	momentum := ranking(contracts.StrategyMomentum, sym("A", 9), sym("M2", 8))
	value := ranking(contracts.StrategyValue, sym("A", 9), sym("V2", 8))
	defensive := ranking(contracts.StrategyDefensive, sym("D1", 9))

	results := a.Aggregate(momentum, value, defensive, 6)

	symbols := make([]string, len(results))
	for i, r := range results {
		symbols[i] = r.Symbol
	}
	assert.Equal(t, []string{"A", "V2", "D1", "M2"}, symbols)
}

func TestAggregator_NeverEmitsDuplicates(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	momentum := ranking(contracts.StrategyMomentum, sym("A", 9), sym("B", 8), sym("C", 7))
	value := ranking(contracts.StrategyValue, sym("A", 9), sym("B", 8), sym("C", 7))
	defensive := ranking(contracts.StrategyDefensive, sym("A", 9), sym("B", 8), sym("C", 7))

	results := a.Aggregate(momentum, value, defensive, 10)

	seen := make(map[string]bool)
	for _, r := range results {
		assert.False(t, seen[r.Symbol], "duplicate symbol %s", r.Symbol)
		seen[r.Symbol] = true
	}
}

func TestAggregator_RespectsMaxResults(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	momentum := ranking(contracts.StrategyMomentum, sym("A", 9), sym("B", 8), sym("C", 7), sym("D", 6))
	value := ranking(contracts.StrategyValue, sym("A", 9), sym("B", 8), sym("C", 7), sym("D", 6))
	defensive := ranking(contracts.StrategyDefensive, sym("A", 9), sym("B", 8), sym("C", 7), sym("D", 6))

	results := a.Aggregate(momentum, value, defensive, 2)
	assert.Len(t, results, 2)
}

func TestAggregator_WindowLimitsCandidates(t *testing.T) {
	// With a window of 1 only the leaders are inspected; overlap beyond
	// position 1 is invisible.
	a := NewAggregator(1, logger.NewNop())

	momentum := ranking(contracts.StrategyMomentum, sym("A", 9), sym("Z", 8))
	value := ranking(contracts.StrategyValue, sym("B", 9), sym("Z", 8))
	defensive := ranking(contracts.StrategyDefensive, sym("C", 9), sym("Z", 8))

	results := a.Aggregate(momentum, value, defensive, 6)

	for _, r := range results {
		assert.NotEqual(t, contracts.StrategyGlobal, r.Strategy,
			"no multi-strategy candidates should exist with window 1")
	}
}

func TestAggregator_EmptyInputs(t *testing.T) {
	a := NewAggregator(DefaultWindow, logger.NewNop())

	assert.Empty(t, a.Aggregate(nil, nil, nil, 6))
}
