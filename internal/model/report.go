package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertEvent is the evaluation result for the latest point of one instrument.
type AlertEvent struct {
	Symbol   string
	Time     time.Time
	Alerts   []Alert
	Snapshot IndicatorSnapshot
}

// InstrumentResult is what one worker produces for one instrument.
// Exactly one of Event and Err is meaningful.
type InstrumentResult struct {
	Symbol string
	Event  *AlertEvent
	// Warnings are advisory problems, such as insufficient history, that did not stop evaluation.
	Warnings []error
	Err      error
}

// ReportRow is one rendered instrument line.
// Indicator fields are nil when the indicator was not valid at the latest point.
type ReportRow struct {
	Ticker    string           `json:"ticker"`
	Time      time.Time        `json:"time"`
	Price     decimal.Decimal  `json:"price"`
	RSI       *decimal.Decimal `json:"rsi"`
	MACD      *decimal.Decimal `json:"macd"`
	Signal    *decimal.Decimal `json:"signal"`
	Volume    uint64           `json:"volume"`
	Alerts    []Alert          `json:"-"`
	AlertText string           `json:"alert"`
	// Warnings carries advisories such as insufficient history, which leave some rules inapplicable.
	Warnings  []string         `json:"warnings,omitempty"`
}

// Failure records an instrument that produced no row.
type Failure struct {
	Ticker string `json:"ticker"`
	Error  string `json:"error"`
}

// NotifierRow is the reduced view of a triggered row handed to notifiers.
type NotifierRow struct {
	Ticker    string
	AlertText string
	Volume    uint64
}

// Report is built fresh on every run.
type Report struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Rows        []ReportRow     `json:"rows"`
	Triggered   []ReportRow     `json:"triggered"`
	Failures    []Failure       `json:"failures,omitempty"`
	Thresholds  AlertThresholds `json:"thresholds"`
}

// NotifierRows reduces the triggered rows to what notifiers need.
func (r *Report) NotifierRows() []NotifierRow {
	out := make([]NotifierRow, 0, len(r.Triggered))
	for _, row := range r.Triggered {
		out = append(out, NotifierRow{Ticker: row.Ticker, AlertText: row.AlertText, Volume: row.Volume})
	}
	return out
}
