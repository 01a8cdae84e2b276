package model

import "time"

// PricePoint is a single daily bar as delivered by the data source.
// Series are ordered by strictly increasing Time.
type PricePoint struct {
	Time   time.Time
	Close  float64
	Volume uint64
}

// ValidatedSeries is a price series that passed the sufficiency checks.
type ValidatedSeries struct {
	Symbol string
	Points []PricePoint
}

// Len returns the number of points in the series.
func (s ValidatedSeries) Len() int { return len(s.Points) }
