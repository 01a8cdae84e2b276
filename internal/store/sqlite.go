package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"StockSentinel/internal/model"
)

// SQLiteStore persists cached bars to a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string, log zerolog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite bar store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol    TEXT    NOT NULL,
			timestamp INTEGER NOT NULL,
			close     REAL    NOT NULL,
			volume    INTEGER NOT NULL,
			PRIMARY KEY (symbol, timestamp)
		)`,
		`CREATE TABLE IF NOT EXISTS fetches (
			symbol     TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL,
			bar_count  INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadBars(ctx context.Context, symbol string, notBefore time.Time) ([]model.PricePoint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fetchedAt int64
	err := s.db.QueryRowContext(ctx, `SELECT fetched_at FROM fetches WHERE symbol = ?`, symbol).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query fetch time: %w", err)
	}
	if time.Unix(fetchedAt, 0).Before(notBefore) {
		return nil, false, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, close, volume FROM daily_bars WHERE symbol = ? ORDER BY timestamp`, symbol)
	if err != nil {
		return nil, false, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.PricePoint
	for rows.Next() {
		var ts, vol int64
		var closePrice float64
		if err := rows.Scan(&ts, &closePrice, &vol); err != nil {
			return nil, false, fmt.Errorf("scan bar: %w", err)
		}
		bars = append(bars, model.PricePoint{Time: time.Unix(ts, 0).UTC(), Close: closePrice, Volume: uint64(vol)})
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate bars: %w", err)
	}
	return bars, true, nil
}

func (s *SQLiteStore) SaveBars(ctx context.Context, symbol string, bars []model.PricePoint, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_bars WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("clear bars: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO daily_bars (symbol, timestamp, close, volume) VALUES (?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, b.Time.Unix(), b.Close, int64(b.Volume)); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO fetches (symbol, fetched_at, bar_count) VALUES (?,?,?)
		 ON CONFLICT(symbol) DO UPDATE SET fetched_at = excluded.fetched_at, bar_count = excluded.bar_count`,
		symbol, fetchedAt.Unix(), len(bars)); err != nil {
		return fmt.Errorf("record fetch: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite bar store")
	return s.db.Close()
}
