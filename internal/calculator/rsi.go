package calculator

// RSI computes the relative strength index using simple rolling means of the
// trailing period gains and losses.
type RSI struct {
	prev    float64
	started bool
	gains   *window
	losses  *window
}

// NewRSI creates an RSI over the given number of price changes.
func NewRSI(period int) *RSI {
	return &RSI{gains: newWindow(period), losses: newWindow(period)}
}

// Next feeds one close. ok is false until period price changes have been observed,
// i.e. for the first period closes.
func (r *RSI) Next(close float64) (value float64, ok bool) {
	if !r.started {
		r.prev = close
		r.started = true
		return 0, false
	}
	delta := close - r.prev
	r.prev = close

	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}
	r.gains.push(gain)
	r.losses.push(loss)
	if !r.gains.full() {
		return 0, false
	}
	return rsiFromAverages(r.gains.mean(), r.losses.mean()), true
}

// rsiFromAverages maps average gain/loss to RSI.
// No losses with gains is 100; no movement at all is 50.
func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain > 0 {
			return 100
		}
		return 50
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
