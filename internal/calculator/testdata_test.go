package calculator

import (
	"time"

	"StockSentinel/internal/model"
)

var baseDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func seriesFromCloses(closes []float64, volume uint64) []model.PricePoint {
	pts := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = model.PricePoint{Time: baseDate.AddDate(0, 0, i), Close: c, Volume: volume}
	}
	return pts
}

func linearCloses(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
