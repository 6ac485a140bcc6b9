package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
	"github.com/mbattaglia/cedear-screener/pkg/logger"
)

func newMomentumScorer() *MomentumScorer {
	return NewMomentumScorer(DefaultMomentumRules(), logger.NewNop())
}

func TestMomentumScorer_PerfectScore(t *testing.T) {
	s := newMomentumScorer()

	result := s.Score(contracts.IndicatorSet{
		Symbol:         "AAPL",
		Price:          185.50,
		DailyChangePct: 2.5,
		VolumeRatio:    1.2,
		RSI:            60,
		SMA:            180.00,
		AboveSMA:       true,
		Trend:          contracts.TrendBullish,
	})

	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 10, result.RawScore)
	assert.Equal(t, result.Score, result.Breakdown.Total())
}

func TestMomentumScorer_ZeroScore(t *testing.T) {
	s := newMomentumScorer()

	result := s.Score(contracts.IndicatorSet{
		Symbol:         "INTC",
		Price:          30.00,
		DailyChangePct: -1.5,
		VolumeRatio:    0.8,
		RSI:            35,
		SMA:            32.00,
		AboveSMA:       false,
		Trend:          contracts.TrendBearish,
	})

	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.Breakdown, 5, "every rule appears even when it scores zero")
	assert.Equal(t, 0, result.Breakdown.Total())
}

func TestMomentumScorer_Rules(t *testing.T) {
	s := newMomentumScorer()

	tests := []struct {
		name      string
		ind       contracts.IndicatorSet
		criterion string
		points    int
	}{
		{
			name:      "daily change above threshold",
			ind:       contracts.IndicatorSet{DailyChangePct: 2.1},
			criterion: "daily_change",
			points:    3,
		},
		{
			name:      "daily change exactly at threshold does not score",
			ind:       contracts.IndicatorSet{DailyChangePct: 2.0},
			criterion: "daily_change",
			points:    0,
		},
		{
			name:      "volume ratio above one",
			ind:       contracts.IndicatorSet{VolumeRatio: 1.01},
			criterion: "volume",
			points:    2,
		},
		{
			name:      "volume ratio exactly one does not score",
			ind:       contracts.IndicatorSet{VolumeRatio: 1.0},
			criterion: "volume",
			points:    0,
		},
		{
			name:      "rsi lower bound inclusive",
			ind:       contracts.IndicatorSet{RSI: 50},
			criterion: "rsi",
			points:    2,
		},
		{
			name:      "rsi upper bound inclusive",
			ind:       contracts.IndicatorSet{RSI: 70},
			criterion: "rsi",
			points:    2,
		},
		{
			name:      "above sma",
			ind:       contracts.IndicatorSet{AboveSMA: true, RSI: 10},
			criterion: "sma",
			points:    2,
		},
		{
			name:      "bullish trend",
			ind:       contracts.IndicatorSet{Trend: contracts.TrendBullish, RSI: 10},
			criterion: "trend",
			points:    1,
		},
		{
			name:      "neutral trend does not score",
			ind:       contracts.IndicatorSet{Trend: contracts.TrendNeutral, RSI: 10},
			criterion: "trend",
			points:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Score(tt.ind)

			outcome, ok := result.Breakdown.Get(tt.criterion)
			require.True(t, ok)
			assert.Equal(t, tt.points, outcome.Points)
		})
	}
}

func TestMomentumScorer_RSIRationale(t *testing.T) {
	s := newMomentumScorer()

	low := s.Score(contracts.IndicatorSet{RSI: 30})
	outcome, _ := low.Breakdown.Get("rsi")
	assert.Contains(t, outcome.Reason, "oversold")

	high := s.Score(contracts.IndicatorSet{RSI: 82})
	outcome, _ = high.Breakdown.Get("rsi")
	assert.Contains(t, outcome.Reason, "overbought")
}

func TestMomentumScorer_ScoreWithinBounds(t *testing.T) {
	s := newMomentumScorer()

	inputs := []contracts.IndicatorSet{
		{DailyChangePct: 100, VolumeRatio: 50, RSI: 55, AboveSMA: true, Trend: contracts.TrendBullish},
		{DailyChangePct: -100, VolumeRatio: 0, RSI: 0, Trend: contracts.TrendBearish},
		{},
	}

	for _, ind := range inputs {
		result := s.Score(ind)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 10)
		assert.Equal(t, result.Score, result.Breakdown.Total())
	}
}

func TestMomentumRules_WeightsSumToTen(t *testing.T) {
	assert.Equal(t, 10, DefaultMomentumRules().MaxScore())
}
