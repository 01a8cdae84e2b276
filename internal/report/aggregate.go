// Package report turns per-instrument results into the rows consumed by the
// display and notification collaborators.
package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"StockSentinel/internal/model"
)

// Aggregate builds a report with one row per successful instrument, in input order.
// Failed instruments are listed in Failures and never produce a row.
// Run metadata (RunID, GeneratedAt, Thresholds) is left for the caller to fill.
func Aggregate(results []model.InstrumentResult) model.Report {
	rep := model.Report{
		Rows:      make([]model.ReportRow, 0, len(results)),
		Triggered: []model.ReportRow{},
	}
	for _, res := range results {
		if res.Err != nil || res.Event == nil {
			rep.Failures = append(rep.Failures, failure(res))
			continue
		}
		row := BuildRow(res.Event)
		for _, w := range res.Warnings {
			row.Warnings = append(row.Warnings, w.Error())
		}
		rep.Rows = append(rep.Rows, row)
		if len(row.Alerts) > 0 {
			rep.Triggered = append(rep.Triggered, row)
		}
	}
	return rep
}

// BuildRow renders one alert event. Indicators that are not valid at the
// latest point are left nil.
func BuildRow(ev *model.AlertEvent) model.ReportRow {
	s := ev.Snapshot
	row := model.ReportRow{
		Ticker:    ev.Symbol,
		Time:      ev.Time,
		Price:     round2(s.Close),
		Volume:    s.Volume,
		Alerts:    ev.Alerts,
		AlertText: AlertText(ev.Alerts),
	}
	if s.Valid.RSI {
		row.RSI = ptr(round2(s.RSI))
	}
	if s.Valid.MACD {
		row.MACD = ptr(round2(s.MACD))
		row.Signal = ptr(round2(s.Signal))
	}
	return row
}

// AlertText joins alert labels one per line, in rule order.
func AlertText(alerts []model.Alert) string {
	labels := make([]string, len(alerts))
	for i, a := range alerts {
		labels[i] = a.Kind.Label()
	}
	return strings.Join(labels, "\n")
}

func failure(res model.InstrumentResult) model.Failure {
	f := model.Failure{Ticker: res.Symbol, Error: "no result"}
	if res.Err != nil {
		f.Error = res.Err.Error()
	}
	return f
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
