package store

import (
	"context"
	"time"

	"StockSentinel/internal/model"
)

// NoopStore is used when SQLite is not configured; every lookup misses.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) LoadBars(_ context.Context, _ string, _ time.Time) ([]model.PricePoint, bool, error) {
	return nil, false, nil
}

func (n *NoopStore) SaveBars(_ context.Context, _ string, _ []model.PricePoint, _ time.Time) error {
	return nil
}

func (n *NoopStore) Close() error { return nil }
