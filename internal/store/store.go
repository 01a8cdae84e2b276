package store

import (
	"context"
	"time"

	"StockSentinel/internal/model"
)

// BarStore caches fetched daily bars so repeated scans on the same day do not
// hit the data provider again.
type BarStore interface {
	// LoadBars returns the cached series for symbol if it was fetched at or after notBefore.
	// ok is false on a miss or a stale entry.
	LoadBars(ctx context.Context, symbol string, notBefore time.Time) (bars []model.PricePoint, ok bool, err error)
	// SaveBars replaces the cached series for symbol.
	SaveBars(ctx context.Context, symbol string, bars []model.PricePoint, fetchedAt time.Time) error
	Close() error
}
