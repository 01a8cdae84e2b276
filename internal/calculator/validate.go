package calculator

import (
	"fmt"

	"StockSentinel/internal/model"
)

// Validate checks a series before computation.
//
// An empty or unordered series is rejected. A series shorter than required is
// returned together with an *InsufficientHistoryError; the returned series is
// still usable and callers are expected to continue.
func Validate(symbol string, series []model.PricePoint, required int) (model.ValidatedSeries, error) {
	if len(series) == 0 {
		return model.ValidatedSeries{}, ErrEmptySeries
	}
	for i := 1; i < len(series); i++ {
		if !series[i].Time.After(series[i-1].Time) {
			return model.ValidatedSeries{}, fmt.Errorf("%w: point %d at %s", ErrUnorderedSeries, i, series[i].Time.Format("2006-01-02"))
		}
	}
	vs := model.ValidatedSeries{Symbol: symbol, Points: series}
	if len(series) < required {
		return vs, &InsufficientHistoryError{Required: required, Available: len(series)}
	}
	return vs, nil
}
