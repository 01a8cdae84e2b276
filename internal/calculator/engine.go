package calculator

import "StockSentinel/internal/model"

const (
	FastPeriod   = 12
	SlowPeriod   = 26
	SignalPeriod = 9
	RSIPeriod    = 14
	VolumePeriod = 5

	// MACDWarmup is the first index at which MACD and Signal are trusted.
	MACDWarmup = SlowPeriod

	// MinHistory is the number of points needed for every rule to be applicable
	// at the latest point, including the crossover rule which also reads the prior point.
	MinHistory = MACDWarmup + 2
)

// Compute derives indicator snapshots for every point of the series in a single pass.
// The output is aligned index-for-index with the input; an empty series yields an empty result.
func Compute(series []model.PricePoint) []model.IndicatorSnapshot {
	out := make([]model.IndicatorSnapshot, len(series))

	fast := NewEMA(FastPeriod)
	slow := NewEMA(SlowPeriod)
	signal := NewEMA(SignalPeriod)
	rsi := NewRSI(RSIPeriod)
	vol := NewRollingMean(VolumePeriod)

	for i, p := range series {
		ema12 := fast.Next(p.Close)
		ema26 := slow.Next(p.Close)
		macd := ema12 - ema26
		sig := signal.Next(macd)
		rsiValue, rsiOK := rsi.Next(p.Close)
		avgVol, volOK := vol.Next(float64(p.Volume))

		out[i] = model.IndicatorSnapshot{
			Time:       p.Time,
			Close:      p.Close,
			Volume:     p.Volume,
			EMA12:      ema12,
			EMA26:      ema26,
			MACD:       macd,
			Signal:     sig,
			RSI:        rsiValue,
			AvgVolume5: avgVol,
			Valid: model.Validity{
				MACD:      i >= MACDWarmup,
				RSI:       rsiOK,
				AvgVolume: volOK,
			},
		}
	}
	return out
}
