package calculator

// RollingMean is a simple moving average that withholds its value until the window is full.
type RollingMean struct {
	w *window
}

// NewRollingMean creates a rolling mean over the trailing period values.
func NewRollingMean(period int) *RollingMean {
	return &RollingMean{w: newWindow(period)}
}

// Next feeds one value. ok is false while fewer than period values have been seen.
func (m *RollingMean) Next(v float64) (mean float64, ok bool) {
	m.w.push(v)
	if !m.w.full() {
		return 0, false
	}
	return m.w.mean(), true
}
