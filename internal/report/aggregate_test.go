package report

import (
	"errors"
	"testing"
	"time"

	"StockSentinel/internal/model"
)

func event(symbol string, alerts ...model.AlertKind) *model.AlertEvent {
	ev := &model.AlertEvent{
		Symbol: symbol,
		Time:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Snapshot: model.IndicatorSnapshot{
			Close:  123.456,
			Volume: 42_000,
			RSI:    71.239,
			MACD:   1.005,
			Signal: 0.994,
			Valid:  model.Validity{MACD: true, RSI: true, AvgVolume: true},
		},
	}
	for _, k := range alerts {
		ev.Alerts = append(ev.Alerts, model.Alert{Kind: k})
	}
	return ev
}

func TestAggregate_OrderAndPartition(t *testing.T) {
	results := []model.InstrumentResult{
		{Symbol: "AAPL", Event: event("AAPL", model.AlertRSIOverbought)},
		{Symbol: "MSFT", Event: event("MSFT")},
		{Symbol: "BAD", Err: errors.New("boom")},
		{Symbol: "NVDA", Event: event("NVDA", model.AlertVolumeSpike, model.AlertMACDBullishCrossover)},
	}
	rep := Aggregate(results)

	if len(rep.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rep.Rows))
	}
	for i, want := range []string{"AAPL", "MSFT", "NVDA"} {
		if rep.Rows[i].Ticker != want {
			t.Errorf("row %d: expected %s, got %s", i, want, rep.Rows[i].Ticker)
		}
	}
	if len(rep.Triggered) != 2 || rep.Triggered[0].Ticker != "AAPL" || rep.Triggered[1].Ticker != "NVDA" {
		t.Fatalf("unexpected triggered rows: %+v", rep.Triggered)
	}
	if len(rep.Failures) != 1 || rep.Failures[0].Ticker != "BAD" || rep.Failures[0].Error != "boom" {
		t.Fatalf("unexpected failures: %+v", rep.Failures)
	}
}

func TestAggregate_Empty(t *testing.T) {
	rep := Aggregate(nil)
	if len(rep.Rows) != 0 || len(rep.Triggered) != 0 || len(rep.Failures) != 0 {
		t.Fatalf("expected empty report, got %+v", rep)
	}
}

func TestBuildRow_RoundingAndText(t *testing.T) {
	row := BuildRow(event("AAPL", model.AlertRSIOverbought, model.AlertVolumeSpike))
	if row.Price.String() != "123.46" {
		t.Errorf("price: got %s", row.Price)
	}
	if row.RSI == nil || row.RSI.String() != "71.24" {
		t.Errorf("rsi: got %v", row.RSI)
	}
	if row.MACD == nil || row.MACD.String() != "1.01" {
		t.Errorf("macd: got %v", row.MACD)
	}
	if row.Volume != 42_000 {
		t.Errorf("volume: got %d", row.Volume)
	}
	if want := "📈 RSI Overbought\n🚨 Volume Spike"; row.AlertText != want {
		t.Errorf("alert text: got %q want %q", row.AlertText, want)
	}
}

func TestBuildRow_InvalidIndicatorsAreAbsent(t *testing.T) {
	ev := event("NEW")
	ev.Snapshot.Valid = model.Validity{}
	row := BuildRow(ev)
	if row.RSI != nil || row.MACD != nil || row.Signal != nil {
		t.Fatalf("expected nil indicators, got rsi=%v macd=%v signal=%v", row.RSI, row.MACD, row.Signal)
	}
	if row.AlertText != "" {
		t.Fatalf("expected empty alert text, got %q", row.AlertText)
	}
}

func TestNotifierRows(t *testing.T) {
	rep := Aggregate([]model.InstrumentResult{
		{Symbol: "AAPL", Event: event("AAPL", model.AlertRSIOversold)},
		{Symbol: "MSFT", Event: event("MSFT")},
	})
	rows := rep.NotifierRows()
	if len(rows) != 1 || rows[0].Ticker != "AAPL" || rows[0].AlertText != "📉 RSI Oversold" {
		t.Fatalf("unexpected notifier rows: %+v", rows)
	}
}

func TestAggregate_WarningsReachRows(t *testing.T) {
	short := errors.New("insufficient history: required 28 points, available 10")
	rep := Aggregate([]model.InstrumentResult{
		{Symbol: "NEW", Event: event("NEW"), Warnings: []error{short}},
		{Symbol: "OLD", Event: event("OLD")},
	})
	if len(rep.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rep.Rows))
	}
	if len(rep.Rows[0].Warnings) != 1 || rep.Rows[0].Warnings[0] != short.Error() {
		t.Errorf("warning not carried: %v", rep.Rows[0].Warnings)
	}
	if rep.Rows[1].Warnings != nil {
		t.Errorf("unexpected warnings on OLD: %v", rep.Rows[1].Warnings)
	}
}
