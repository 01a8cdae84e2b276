package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"StockSentinel/internal/model"
	"StockSentinel/internal/notifier"
)

type fakeRunner struct {
	rep     *model.Report
	err     error
	symbols []string
}

func (f *fakeRunner) Run(_ context.Context, symbols []string, th model.AlertThresholds) (*model.Report, error) {
	f.symbols = symbols
	if f.err != nil {
		return nil, f.err
	}
	rep := *f.rep
	rep.Thresholds = th
	return &rep, nil
}

type recordingNotifier struct {
	sent [][]model.NotifierRow
}

func (r *recordingNotifier) Name() string { return "recording" }

func (r *recordingNotifier) Notify(_ context.Context, rows []model.NotifierRow) error {
	r.sent = append(r.sent, rows)
	return nil
}

var th = model.AlertThresholds{RSIUpper: 70, RSILower: 30, VolumeSpikeFactor: 2}

func tickers(list ...string) TickerSource {
	return func() ([]string, error) { return list, nil }
}

func triggeredReport() *model.Report {
	row := model.ReportRow{Ticker: "AAPL", AlertText: "📈 RSI Overbought", Volume: 10}
	return &model.Report{
		RunID:     "r1",
		Rows:      []model.ReportRow{row, {Ticker: "MSFT"}},
		Triggered: []model.ReportRow{row},
	}
}

func TestRunNow_NotifiesTriggeredRows(t *testing.T) {
	runner := &fakeRunner{rep: triggeredReport()}
	n := &recordingNotifier{}
	s := NewScheduler(context.Background(), runner, tickers("AAPL", "MSFT"), th, n, zerolog.Nop())

	rep, err := s.RunNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(runner.symbols, ",") != "AAPL,MSFT" {
		t.Errorf("unexpected symbols %v", runner.symbols)
	}
	if len(n.sent) != 1 || len(n.sent[0]) != 1 || n.sent[0][0].Ticker != "AAPL" {
		t.Fatalf("unexpected notifications %+v", n.sent)
	}
	if s.Last() != rep {
		t.Error("last report not recorded")
	}
}

func TestRunNow_NothingTriggered(t *testing.T) {
	runner := &fakeRunner{rep: &model.Report{Rows: []model.ReportRow{{Ticker: "MSFT"}}, Triggered: []model.ReportRow{}}}
	n := &recordingNotifier{}
	s := NewScheduler(context.Background(), runner, tickers("MSFT"), th, n, zerolog.Nop())

	if _, err := s.RunNow(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(n.sent) != 0 {
		t.Fatal("no notification expected without triggered rows")
	}
}

func TestRunNow_Errors(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{err: errors.New("bad thresholds")}, tickers("X"), th, nil, zerolog.Nop())
	if _, err := s.RunNow(context.Background()); err == nil {
		t.Fatal("expected runner error")
	}
	if s.Last() != nil {
		t.Fatal("failed run must not replace the last report")
	}

	s.Tickers = func() ([]string, error) { return nil, errors.New("no file") }
	if _, err := s.RunNow(context.Background()); err == nil || !strings.Contains(err.Error(), "load tickers") {
		t.Fatalf("expected ticker error, got %v", err)
	}
}

func TestHandleCommand(t *testing.T) {
	n := &recordingNotifier{}
	s := NewScheduler(context.Background(), &fakeRunner{rep: triggeredReport()}, tickers("AAPL"), th, n, zerolog.Nop())
	ctx := context.Background()

	if got := s.HandleCommand(ctx, "/thresholds"); !strings.Contains(got, "&gt; 70") {
		t.Errorf("thresholds reply: %q", got)
	}
	if got := s.HandleCommand(ctx, "/scan@SentinelBot"); got != "" || len(n.sent) != 1 {
		t.Errorf("scan with alerts should reply through the digest, got %q sent=%d", got, len(n.sent))
	}
	for _, cmd := range []string{"/help", "hello", "   "} {
		if got := s.HandleCommand(ctx, cmd); got != notifier.HelpText {
			t.Errorf("%q: got %q", cmd, got)
		}
	}

	s.Runner = &fakeRunner{rep: &model.Report{Rows: []model.ReportRow{{Ticker: "AAPL"}}, Failures: []model.Failure{{Ticker: "ZZZ"}}}}
	if got := s.HandleCommand(ctx, "/SCAN"); !strings.Contains(got, "no alerts") || !strings.Contains(got, "ZZZ") {
		t.Errorf("quiet scan reply: %q", got)
	}
}

func TestRegister_RejectsBadCron(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{}, tickers("X"), th, nil, zerolog.Nop())
	if err := s.Register("0 30 22 * * 1-5"); err != nil {
		t.Fatalf("valid cron expression rejected: %v", err)
	}
	if err := s.Register("every day"); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}
