package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

func newValueScorer() *ValueScorer {
	return NewValueScorer(DefaultValueRules(), logger.NewNop())
}

func TestValueScorer_PerfectScore(t *testing.T) {
	s := newValueScorer()

	result := s.Score(contracts.FundamentalSet{
		Symbol:        "JPM",
		PERatio:       contracts.Float(12),
		PriceToBook:   contracts.Float(2),
		DividendYield: contracts.Float(0.03),
		ROE:           contracts.Float(0.20),
		DebtToEquity:  contracts.Float(40),
	})

	assert.Equal(t, 10, result.Score)
	assert.Equal(t, result.Score, result.Breakdown.Total())
}

func TestValueScorer_MissingMetrics(t *testing.T) {
	s := newValueScorer()

	result := s.Score(contracts.FundamentalSet{Symbol: "TSLA"})

	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.Breakdown, 5)

	outcome, ok := result.Breakdown.Get("pe_ratio")
	require.True(t, ok)
	assert.Contains(t, outcome.Reason, "not available")

	outcome, ok = result.Breakdown.Get("roe")
	require.True(t, ok)
	assert.Contains(t, outcome.Reason, "not available")
}

func TestValueScorer_NegativePEIsNotScored(t *testing.T) {
	s := newValueScorer()

	result := s.Score(contracts.FundamentalSet{
		Symbol:  "UBER",
		PERatio: contracts.Float(-8),
	})

	outcome, ok := result.Breakdown.Get("pe_ratio")
	require.True(t, ok)
	assert.Equal(t, 0, outcome.Points)
	assert.Contains(t, outcome.Reason, "not available or negative")
}

func TestValueScorer_PETiers(t *testing.T) {
	s := newValueScorer()

	tests := []struct {
		name   string
		pe     float64
		points int
	}{
		{"very cheap", 12, 3},
		{"acceptable", 20, 1},
		{"boundary low", 15, 1},
		{"expensive", 25, 0},
		{"very expensive", 40, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Score(contracts.FundamentalSet{PERatio: contracts.Float(tt.pe)})
			outcome, _ := result.Breakdown.Get("pe_ratio")
			assert.Equal(t, tt.points, outcome.Points)
		})
	}
}

func TestValueScorer_DividendBelowThreshold(t *testing.T) {
	s := newValueScorer()

	result := s.Score(contracts.FundamentalSet{DividendYield: contracts.Float(0.01)})
	outcome, _ := result.Breakdown.Get("dividend")
	assert.Equal(t, 0, outcome.Points)

	result = s.Score(contracts.FundamentalSet{DividendYield: contracts.Float(0.02)})
	outcome, _ = result.Breakdown.Get("dividend")
	assert.Equal(t, 2, outcome.Points, "threshold is inclusive")
}

func TestValueScorer_ScoreWithinBounds(t *testing.T) {
	s := newValueScorer()

	inputs := []contracts.FundamentalSet{
		{PERatio: contracts.Float(5), PriceToBook: contracts.Float(0.5), DividendYield: contracts.Float(0.08), ROE: contracts.Float(0.40), DebtToEquity: contracts.Float(5)},
		{PERatio: contracts.Float(100), DebtToEquity: contracts.Float(400)},
		{},
	}

	for _, f := range inputs {
		result := s.Score(f)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 10)
		assert.Equal(t, result.Score, result.Breakdown.Total())
	}
}

func TestValueRules_WeightsSumToTen(t *testing.T) {
	assert.Equal(t, 10, DefaultValueRules().MaxScore())
}
