package calculator

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"StockSentinel/internal/model"
)

func TestCompute_EmptySeries(t *testing.T) {
	if got := Compute(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d snapshots", len(got))
	}
}

func TestCompute_AlignedWithInput(t *testing.T) {
	series := seriesFromCloses(linearCloses(40, 100, 1), 1000)
	snaps := Compute(series)
	if len(snaps) != len(series) {
		t.Fatalf("expected %d snapshots, got %d", len(series), len(snaps))
	}
	for i := range series {
		if !snaps[i].Time.Equal(series[i].Time) || snaps[i].Close != series[i].Close || snaps[i].Volume != series[i].Volume {
			t.Fatalf("snapshot %d not aligned with input point", i)
		}
	}
}

func TestCompute_ValidityFlags(t *testing.T) {
	snaps := Compute(seriesFromCloses(linearCloses(40, 100, 1), 1000))
	for i, s := range snaps {
		if s.Valid.MACD != (i >= 26) {
			t.Errorf("index %d: MACD valid=%v", i, s.Valid.MACD)
		}
		if s.Valid.RSI != (i >= 14) {
			t.Errorf("index %d: RSI valid=%v", i, s.Valid.RSI)
		}
		if s.Valid.AvgVolume != (i >= 4) {
			t.Errorf("index %d: avg volume valid=%v", i, s.Valid.AvgVolume)
		}
	}
}

func TestCompute_MACDIsEMADifference(t *testing.T) {
	closes := []float64{10, 11, 10.5, 12, 13, 12.5, 14, 13.8, 15, 16}
	snaps := Compute(seriesFromCloses(closes, 1))
	fast, slow, sig := NewEMA(12), NewEMA(26), NewEMA(9)
	for i, c := range closes {
		e12, e26 := fast.Next(c), slow.Next(c)
		signal := sig.Next(e12 - e26)
		if math.Abs(snaps[i].MACD-(e12-e26)) > 1e-12 || math.Abs(snaps[i].Signal-signal) > 1e-12 {
			t.Fatalf("index %d: MACD/Signal mismatch", i)
		}
	}
	if snaps[0].MACD != 0 || snaps[0].Signal != 0 {
		t.Fatalf("first point should seed MACD and Signal at 0")
	}
}

func TestCompute_AvgVolume(t *testing.T) {
	series := seriesFromCloses(linearCloses(6, 1, 1), 0)
	for i := range series {
		series[i].Volume = uint64(100 * (i + 1))
	}
	snaps := Compute(series)
	if snaps[4].AvgVolume5 != 300 {
		t.Fatalf("expected avg volume 300 at index 4, got %v", snaps[4].AvgVolume5)
	}
	if snaps[5].AvgVolume5 != 400 {
		t.Fatalf("expected avg volume 400 at index 5, got %v", snaps[5].AvgVolume5)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	closes := []float64{5, 7, 6, 8, 9, 8.5, 10, 11, 9, 12, 13, 12, 14, 15, 13, 16, 17, 18, 16, 19, 20, 21, 19, 22, 23, 24, 22, 25, 26, 27}
	series := seriesFromCloses(closes, 5000)
	a := Compute(series)
	b := Compute(series)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("Compute is not deterministic")
	}
}

func TestValidate(t *testing.T) {
	series := seriesFromCloses(linearCloses(10, 1, 1), 1)

	if _, err := Validate("X", nil, 5); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}

	vs, err := Validate("X", series, 5)
	if err != nil || vs.Len() != 10 || vs.Symbol != "X" {
		t.Fatalf("expected valid series, got %v (len %d)", err, vs.Len())
	}

	vs, err = Validate("X", series, MinHistory)
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory, got %v", err)
	}
	var ih *InsufficientHistoryError
	if !errors.As(err, &ih) || ih.Required != MinHistory || ih.Available != 10 {
		t.Fatalf("unexpected error detail: %+v", ih)
	}
	if vs.Len() != 10 {
		t.Fatal("series should still be returned with advisory error")
	}

	unordered := append([]model.PricePoint{}, series...)
	unordered[3].Time = unordered[2].Time
	if _, err := Validate("X", unordered, 5); !errors.Is(err, ErrUnorderedSeries) {
		t.Fatalf("expected ErrUnorderedSeries, got %v", err)
	}
}
