// Package scanner runs the alert pipeline over a list of instruments.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/metrics"
	"StockSentinel/internal/model"
	"StockSentinel/internal/report"
	"StockSentinel/internal/strategy"
)

// DefaultLookbackDays is enough history for every indicator to warm up with room to spare.
const DefaultLookbackDays = 90

// Scanner fetches, evaluates and aggregates a set of instruments.
type Scanner struct {
	Fetcher collector.Fetcher
	Workers int
	Days    int
	Metrics *metrics.Recorder
	Log     zerolog.Logger
	Now     func() time.Time
}

// New creates a Scanner. workers <= 0 means runtime.NumCPU().
func New(f collector.Fetcher, workers, days int, m *metrics.Recorder, log zerolog.Logger) *Scanner {
	return &Scanner{Fetcher: f, Workers: workers, Days: days, Metrics: m, Log: log, Now: time.Now}
}

// Run evaluates every symbol under th and returns the aggregated report.
// Invalid thresholds fail the whole run before anything is fetched; per-instrument
// problems end up in Report.Failures.
func (s *Scanner) Run(ctx context.Context, symbols []string, th model.AlertThresholds) (*model.Report, error) {
	ev, err := strategy.NewEvaluator(th)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, collector.ErrNoTickers
	}

	start := s.now()
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	days := s.Days
	if days <= 0 {
		days = DefaultLookbackDays
	}

	results := make([]model.InstrumentResult, len(symbols))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, sym := range symbols {
		if err := ctx.Err(); err != nil {
			results[i] = model.InstrumentResult{Symbol: sym, Err: err}
			continue
		}
		i, sym := i, sym
		g.Go(func() error {
			results[i] = s.scanOne(ctx, sym, days, ev)
			return nil
		})
	}
	_ = g.Wait()

	rep := report.Aggregate(results)
	rep.RunID = uuid.NewString()
	rep.GeneratedAt = s.now()
	rep.Thresholds = th

	if s.Metrics != nil {
		s.Metrics.ObserveScan(rep.GeneratedAt.Sub(start))
	}
	s.Log.Info().
		Str("run_id", rep.RunID).
		Int("instruments", len(symbols)).
		Int("rows", len(rep.Rows)).
		Int("triggered", len(rep.Triggered)).
		Int("failures", len(rep.Failures)).
		Dur("took", rep.GeneratedAt.Sub(start)).
		Msg("scan finished")
	return &rep, nil
}

func (s *Scanner) scanOne(ctx context.Context, symbol string, days int, ev *strategy.Evaluator) model.InstrumentResult {
	if err := ctx.Err(); err != nil {
		return model.InstrumentResult{Symbol: symbol, Err: err}
	}
	series, err := s.Fetcher.FetchDailyBars(ctx, symbol, days)
	if err != nil {
		s.Log.Warn().Err(err).Str("symbol", symbol).Msg("fetch failed")
		s.record(metrics.OutcomeError, nil)
		return model.InstrumentResult{Symbol: symbol, Err: fmt.Errorf("fetch %s: %w", symbol, err)}
	}

	res := Analyze(symbol, series, ev)
	switch {
	case errors.Is(res.Err, calculator.ErrEmptySeries):
		s.Log.Warn().Str("symbol", symbol).Msg("no data")
		s.record(metrics.OutcomeEmpty, nil)
	case res.Err != nil:
		s.Log.Warn().Err(res.Err).Str("symbol", symbol).Msg("analysis failed")
		s.record(metrics.OutcomeError, nil)
	default:
		for _, w := range res.Warnings {
			s.Log.Info().Err(w).Str("symbol", symbol).Msg("advisory")
		}
		if len(res.Event.Alerts) > 0 {
			s.Log.Info().Str("symbol", symbol).Str("alerts", report.AlertText(res.Event.Alerts)).Msg("alert")
		}
		s.record(metrics.OutcomeOK, res.Event)
	}
	return res
}

// Analyze validates series, computes indicators and evaluates the latest point
// against the one before it. It performs no I/O.
func Analyze(symbol string, series []model.PricePoint, ev *strategy.Evaluator) model.InstrumentResult {
	res := model.InstrumentResult{Symbol: symbol}

	vs, err := calculator.Validate(symbol, series, calculator.MinHistory)
	if err != nil {
		if !errors.Is(err, calculator.ErrInsufficientHistory) {
			res.Err = err
			return res
		}
		res.Warnings = append(res.Warnings, err)
	}

	snaps := calculator.Compute(vs.Points)
	last := len(snaps) - 1
	var prev *model.IndicatorSnapshot
	if last > 0 {
		prev = &snaps[last-1]
	}
	eval := ev.Evaluate(snaps[last], prev)

	res.Event = &model.AlertEvent{
		Symbol:   symbol,
		Time:     snaps[last].Time,
		Alerts:   eval.Alerts(),
		Snapshot: snaps[last],
	}
	return res
}

func (s *Scanner) record(outcome string, ev *model.AlertEvent) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.RecordInstrument(outcome)
	if ev != nil {
		s.Metrics.RecordEvent(ev)
	}
}

func (s *Scanner) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
