package calculator

// window is a fixed-size circular buffer of the most recent values.
type window struct {
	buf  []float64
	next int
	n    int
}

func newWindow(size int) *window {
	return &window{buf: make([]float64, size)}
}

func (w *window) push(v float64) {
	w.buf[w.next] = v
	w.next = (w.next + 1) % len(w.buf)
	if w.n < len(w.buf) {
		w.n++
	}
}

func (w *window) full() bool { return w.n == len(w.buf) }

// mean sums the buffer on every call instead of keeping a running total,
// so an all-zero window is exactly zero.
func (w *window) mean() float64 {
	sum := 0.0
	for i := 0; i < w.n; i++ {
		sum += w.buf[i]
	}
	return sum / float64(w.n)
}
