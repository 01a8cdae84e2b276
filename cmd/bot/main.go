package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"StockSentinel/internal/collector"
	"StockSentinel/internal/config"
	"StockSentinel/internal/logger"
	"StockSentinel/internal/metrics"
	"StockSentinel/internal/notifier"
	"StockSentinel/internal/scanner"
	"StockSentinel/internal/scheduler"
	"StockSentinel/internal/server"
	"StockSentinel/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stock sentinel: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	log.Info().Str("config", cfgPath).Msg("StockSentinel starting")

	// Bar cache
	var bars store.BarStore = store.NewNoopStore()
	if cfg.Database.SQLitePath != "" {
		st, err := store.NewSQLiteStore(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite bar store failed, caching disabled")
		} else {
			bars = st
		}
	}
	defer bars.Close()

	fetcher := newFetcher(cfg, bars, log)
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	sc := scanner.New(fetcher, cfg.DataSource.Workers, cfg.DataSource.LookbackDays, rec, log.With().Str("component", "scanner").Logger())

	tickers := func() ([]string, error) {
		return collector.LoadTickers(cfg.Tickers.File, cfg.Tickers.Default)
	}

	// Notifiers
	multi := notifier.NewMulti(log)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.Enabled {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log.With().Str("component", "telegram").Logger())
		multi.Notifiers = append(multi.Notifiers, tn)
	}
	if cfg.Email.Enabled {
		multi.Notifiers = append(multi.Notifiers, notifier.NewEmailNotifier(
			cfg.Email.Host, cfg.Email.Port, cfg.Email.Username, cfg.Email.Password, cfg.Email.To,
			log.With().Str("component", "email").Logger()))
	}
	if multi.Len() == 0 {
		log.Warn().Msg("no notifier enabled, alerts are only logged and served over http")
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, sc, tickers, cfg.Thresholds, multi, log.With().Str("component", "scheduler").Logger())
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	var srv *server.Server
	if cfg.HTTP.Enabled {
		h := server.NewHandler(sc, sched, tickers, log.With().Str("component", "http").Logger())
		srv = server.New(h, cfg.HTTP.Addr, reg, log)
		srv.Start()
	}

	if cfg.Schedule.RunOnStart {
		log.Info().Msg("run_on_start enabled, scanning now")
		go func() {
			if _, err := sched.RunNow(ctx); err != nil {
				log.Error().Err(err).Msg("initial scan")
			}
		}()
	}

	log.Info().Str("cron", cfg.Schedule.DailyCron).Msg("StockSentinel is running, press Ctrl+C to stop")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}
	return nil
}

func newFetcher(cfg *config.Config, bars store.BarStore, log zerolog.Logger) collector.Fetcher {
	var f collector.Fetcher
	switch cfg.DataSource.Provider {
	case "rest":
		f = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.Timeout)
	case "mock":
		return &collector.MockFetcher{}
	default:
		f = collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.Timeout)
	}
	if cfg.DataSource.CacheTTL <= 0 {
		return f
	}
	return collector.NewCachingFetcher(f, bars, cfg.DataSource.CacheTTL, log.With().Str("component", "cache").Logger())
}
