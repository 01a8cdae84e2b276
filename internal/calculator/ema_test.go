package calculator

import (
	"math"
	"testing"
)

func TestEMA_SeedAndRecursion(t *testing.T) {
	e := NewEMA(3) // k = 0.5
	if got := e.Next(10); got != 10 {
		t.Fatalf("seed: expected 10, got %v", got)
	}
	if got := e.Next(20); got != 15 {
		t.Fatalf("second: expected 15, got %v", got)
	}
	if got := e.Next(15); got != 15 {
		t.Fatalf("third: expected 15, got %v", got)
	}
}

func TestEMA_ConstantInput(t *testing.T) {
	e := NewEMA(26)
	for i := 0; i < 50; i++ {
		if got := e.Next(42); got != 42 {
			t.Fatalf("step %d: expected 42, got %v", i, got)
		}
	}
}

func TestEMA_MatchesClosedForm(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	k := 2.0 / 13.0
	e := NewEMA(12)
	want := values[0]
	e.Next(values[0])
	for _, v := range values[1:] {
		want = v*k + want*(1-k)
		if got := e.Next(v); math.Abs(got-want) > 1e-12 {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRollingMean_WithholdsUntilFull(t *testing.T) {
	m := NewRollingMean(5)
	for i, v := range []float64{1, 2, 3, 4} {
		if _, ok := m.Next(v); ok {
			t.Fatalf("value %d: expected not ok before window is full", i)
		}
	}
	if got, ok := m.Next(5); !ok || got != 3 {
		t.Fatalf("expected mean 3, got %v ok=%v", got, ok)
	}
	if got, ok := m.Next(10); !ok || got != 4.8 {
		t.Fatalf("expected rolled mean 4.8, got %v ok=%v", got, ok)
	}
}
