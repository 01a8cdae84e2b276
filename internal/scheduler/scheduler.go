package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StockSentinel/internal/model"
	"StockSentinel/internal/notifier"
)

// Runner produces a report for a list of tickers.
type Runner interface {
	Run(ctx context.Context, symbols []string, th model.AlertThresholds) (*model.Report, error)
}

// TickerSource resolves the ticker list for a run.
type TickerSource func() ([]string, error)

// Scheduler manages the cron-driven scan and the notification that follows it.
type Scheduler struct {
	Cron       *cron.Cron
	Runner     Runner
	Tickers    TickerSource
	Thresholds model.AlertThresholds
	Notifier   notifier.Notifier
	Log        zerolog.Logger
	Ctx        context.Context

	mu   sync.RWMutex
	last *model.Report
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, r Runner, tickers TickerSource, th model.AlertThresholds, n notifier.Notifier, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Runner:     r,
		Tickers:    tickers,
		Thresholds: th,
		Notifier:   n,
		Log:        log,
		Ctx:        ctx,
	}
}

// Register adds the daily scan under dailyCron (six fields, seconds first).
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyScan); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info().Msg("scheduler stopped")
}

// RunNow scans and notifies immediately (for RUN_ON_START and /scan).
func (s *Scheduler) RunNow(ctx context.Context) (*model.Report, error) {
	symbols, err := s.Tickers()
	if err != nil {
		return nil, fmt.Errorf("load tickers: %w", err)
	}
	rep, err := s.Runner.Run(ctx, symbols, s.Thresholds)
	if err != nil {
		return nil, err
	}
	s.SetLast(rep)

	if s.Notifier != nil && len(rep.Triggered) > 0 {
		if err := s.Notifier.Notify(ctx, rep.NotifierRows()); err != nil {
			s.Log.Error().Err(err).Str("run_id", rep.RunID).Msg("notify")
		}
	}
	return rep, nil
}

// Last returns the most recent report, or nil before the first run.
func (s *Scheduler) Last() *model.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// SetLast records rep as the most recent report.
func (s *Scheduler) SetLast(rep *model.Report) {
	s.mu.Lock()
	s.last = rep
	s.mu.Unlock()
}

func (s *Scheduler) dailyScan() {
	s.Log.Info().Msg("running daily scan")
	if _, err := s.RunNow(s.Ctx); err != nil {
		s.Log.Error().Err(err).Msg("daily scan")
	}
}

// HandleCommand processes a bot command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	var cmd string
	if fields := strings.Fields(command); len(fields) > 0 {
		// "/scan@MyBot" in group chats
		cmd, _, _ = strings.Cut(strings.ToLower(fields[0]), "@")
	}
	switch cmd {
	case "/scan":
		rep, err := s.RunNow(ctx)
		if err != nil {
			return fmt.Sprintf("❌ Scan failed: %v", err)
		}
		if len(rep.Triggered) > 0 {
			// the digest was already delivered by RunNow
			return ""
		}
		return notifier.FormatScanSummary(rep)
	case "/thresholds":
		return notifier.FormatThresholds(s.Thresholds)
	default:
		return notifier.HelpText
	}
}
