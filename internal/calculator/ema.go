package calculator

// EMA is a recursive exponential moving average seeded with the first value.
type EMA struct {
	k      float64
	value  float64
	seeded bool
}

// NewEMA creates an EMA with smoothing factor 2/(period+1).
func NewEMA(period int) *EMA {
	return &EMA{k: 2.0 / float64(period+1)}
}

// Next feeds one value and returns the updated average.
func (e *EMA) Next(v float64) float64 {
	if !e.seeded {
		e.value = v
		e.seeded = true
		return e.value
	}
	e.value = v*e.k + e.value*(1-e.k)
	return e.value
}
