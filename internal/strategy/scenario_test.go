package strategy

import (
	"testing"
	"time"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

func buildSeries(closes []float64, volume uint64) []model.PricePoint {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	pts := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = model.PricePoint{Time: start.AddDate(0, 0, i), Close: c, Volume: volume}
	}
	return pts
}

// crossoverIndexes evaluates every point and returns where the MACD crossover fired.
func crossoverIndexes(ev *Evaluator, snaps []model.IndicatorSnapshot) []int {
	var idx []int
	for i := range snaps {
		var prev *model.IndicatorSnapshot
		if i > 0 {
			prev = &snaps[i-1]
		}
		if ev.Evaluate(snaps[i], prev).Fired(model.AlertMACDBullishCrossover) {
			idx = append(idx, i)
		}
	}
	return idx
}

func TestScenario_SteadyRise(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + 50*float64(i)/29
	}
	snaps := calculator.Compute(buildSeries(closes, 10_000))
	last := snaps[len(snaps)-1]
	if !last.Valid.RSI || last.RSI != 100 {
		t.Fatalf("expected final RSI 100, got %v (valid=%v)", last.RSI, last.Valid.RSI)
	}

	ev := defaultEvaluator(t)
	res := ev.Evaluate(last, &snaps[len(snaps)-2])
	if !res.Fired(model.AlertRSIOverbought) {
		t.Error("expected RSI overbought")
	}
	if res.Fired(model.AlertRSIOversold) {
		t.Error("unexpected RSI oversold")
	}
	if got := res.Status(model.AlertVolumeSpike); got != model.RuleNotFired {
		t.Errorf("expected volume spike not_fired, got %s", got)
	}
	if got := res.Status(model.AlertMACDBullishCrossover); got != model.RuleNotFired {
		t.Errorf("expected MACD crossover not_fired, got %s", got)
	}

	// The only raw transition happens right after the seed, where MACD leaves
	// Signal from equality at 0. It is inside the warm-up window and never fires.
	raw := -1
	for i := 1; i < len(snaps); i++ {
		if snaps[i].MACD > snaps[i].Signal && snaps[i-1].MACD <= snaps[i-1].Signal {
			if raw != -1 {
				t.Fatalf("expected a single raw transition, found another at %d", i)
			}
			raw = i
		}
	}
	if raw != 1 {
		t.Fatalf("expected raw transition at index 1, got %d", raw)
	}
	if snaps[0].MACD != snaps[0].Signal {
		t.Fatal("seed point should have MACD equal to Signal")
	}
	for i := raw; i < len(snaps); i++ {
		if snaps[i].MACD <= snaps[i].Signal || snaps[i].MACD <= 0 {
			t.Fatalf("index %d: MACD should stay positive and above Signal", i)
		}
	}
	if got := crossoverIndexes(ev, snaps); len(got) != 0 {
		t.Fatalf("expected no crossover alerts, got %v", got)
	}
}

func TestScenario_SingleCrossover(t *testing.T) {
	// 40 days falling, then 30 days rising
	closes := make([]float64, 0, 70)
	for i := 0; i < 40; i++ {
		closes = append(closes, 200-float64(i))
	}
	for i := 1; i <= 30; i++ {
		closes = append(closes, 161+float64(i))
	}
	snaps := calculator.Compute(buildSeries(closes, 1000))

	want := -1
	for i := calculator.MACDWarmup + 1; i < len(snaps); i++ {
		if snaps[i].MACD > snaps[i].Signal && snaps[i-1].MACD < snaps[i-1].Signal {
			want = i
			break
		}
	}
	if want <= 40 {
		t.Fatalf("expected a crossing after the turn at index 40, got %d", want)
	}

	got := crossoverIndexes(defaultEvaluator(t), snaps)
	if len(got) != 1 || got[0] != want {
		t.Fatalf("expected exactly one crossover at %d, got %v", want, got)
	}
	for i := want; i < len(snaps); i++ {
		if snaps[i].MACD <= snaps[i].Signal {
			t.Fatalf("index %d: MACD dropped back below Signal", i)
		}
	}
}
