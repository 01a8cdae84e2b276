package model

import "time"

// Validity reports which indicators of a snapshot can be trusted.
type Validity struct {
	MACD      bool
	RSI       bool
	AvgVolume bool
}

// IndicatorSnapshot holds all indicators derived for one point of a series.
// Values whose Validity flag is false are warm-up values and must not be used by rules.
type IndicatorSnapshot struct {
	Time       time.Time
	Close      float64
	Volume     uint64
	EMA12      float64
	EMA26      float64
	MACD       float64
	Signal     float64
	RSI        float64
	AvgVolume5 float64
	Valid      Validity
}
