package marketdata

import (
	"fmt"
	"math"

	"github.com/mbattaglia/cedear-screener/internal/contracts"
)

// TechnicalParams holds the lookback windows used by the indicator
// calculations.
type TechnicalParams struct {
	RSIPeriod      int
	SMAPeriod      int
	VolumeMAPeriod int
	TrendLookback  int
	TrendThreshold float64 // percent move that flips neutral to a trend
}

// DefaultTechnicalParams returns the standard indicator windows.
func DefaultTechnicalParams() TechnicalParams {
	return TechnicalParams{
		RSIPeriod:      14,
		SMAPeriod:      20,
		VolumeMAPeriod: 30,
		TrendLookback:  5,
		TrendThreshold: 2.0,
	}
}

// RSI computes the Relative Strength Index over the last value of the
// series with Wilder smoothing. Returns 50 (neutral) when the series is
// too short to compute it.
func RSI(closes []float64, period int) float64 {
	if len(closes) <= period {
		return 50
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		diff := closes[i] - closes[i-1]
		if diff > 0 {
			avgGain += diff
		} else {
			avgLoss -= diff
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		diff := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if diff > 0 {
			gain = diff
		} else {
			loss = -diff
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// SMA computes the simple moving average of the last period values.
// Returns the last close when the series is too short.
func SMA(closes []float64, period int) float64 {
	if len(closes) == 0 {
		return 0
	}
	if len(closes) < period {
		return closes[len(closes)-1]
	}

	var sum float64
	for _, c := range closes[len(closes)-period:] {
		sum += c
	}
	return sum / float64(period)
}

// VolumeMA computes the moving average of the last period volumes.
// Returns 0 when the series is too short.
func VolumeMA(volumes []int64, period int) float64 {
	if len(volumes) < period {
		return 0
	}

	var sum float64
	for _, v := range volumes[len(volumes)-period:] {
		sum += float64(v)
	}
	return sum / float64(period)
}

// DailyChangePct computes the percent change between the last two closes.
// Returns 0 when fewer than two closes are available.
func DailyChangePct(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	prev := closes[len(closes)-2]
	if prev == 0 {
		return 0
	}
	return (closes[len(closes)-1] - prev) / prev * 100
}

// TrendOf classifies the recent price direction over the last lookback
// closes. A move beyond threshold percent in either direction is a trend,
// anything else is neutral.
func TrendOf(closes []float64, lookback int, threshold float64) contracts.Trend {
	if len(closes) < lookback {
		return contracts.TrendNeutral
	}

	recent := closes[len(closes)-lookback:]
	start, end := recent[0], recent[len(recent)-1]
	if start == 0 {
		return contracts.TrendNeutral
	}

	changePct := (end - start) / start * 100
	switch {
	case changePct > threshold:
		return contracts.TrendBullish
	case changePct < -threshold:
		return contracts.TrendBearish
	default:
		return contracts.TrendNeutral
	}
}

// Volatility computes the sample standard deviation of daily returns as a
// decimal (0.02 = 2%). Returns nil when fewer than 20 returns are
// available, so the beta/volatility rules can score it as missing data.
func Volatility(closes []float64) *float64 {
	returns := make([]float64, 0, len(closes))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}

	if len(returns) < 20 {
		return nil
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var sumSq float64
	for _, r := range returns {
		d := r - mean
		sumSq += d * d
	}
	vol := math.Sqrt(sumSq / float64(len(returns)-1))
	return &vol
}

// BuildIndicatorSet computes all technical indicators for a symbol from
// its daily candles. Fails when the history is shorter than the volume
// moving average window; partial indicator sets are never produced.
func BuildIndicatorSet(symbol string, candles []Candle, params TechnicalParams) (contracts.IndicatorSet, error) {
	if len(candles) < params.VolumeMAPeriod {
		return contracts.IndicatorSet{}, fmt.Errorf(
			"insufficient history for %s: %d candles, need %d",
			symbol, len(candles), params.VolumeMAPeriod,
		)
	}

	closes := make([]float64, len(candles))
	volumes := make([]int64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	price := closes[len(closes)-1]
	volume := volumes[len(volumes)-1]

	volumeAvg := VolumeMA(volumes, params.VolumeMAPeriod)
	volumeRatio := 1.0
	if volumeAvg > 0 {
		volumeRatio = float64(volume) / volumeAvg
	}

	sma := SMA(closes, params.SMAPeriod)

	return contracts.IndicatorSet{
		Symbol:         symbol,
		Price:          round2(price),
		DailyChangePct: round2(DailyChangePct(closes)),
		Volume:         volume,
		VolumeAvg:      math.Round(volumeAvg),
		VolumeRatio:    round2(volumeRatio),
		RSI:            round2(RSI(closes, params.RSIPeriod)),
		SMA:            round2(sma),
		AboveSMA:       price > sma,
		Trend:          TrendOf(closes, params.TrendLookback, params.TrendThreshold),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
