package collector

import (
	"context"

	"StockSentinel/internal/model"
)

// Fetcher retrieves daily bars, oldest first, for one symbol.
// Implementations own their timeout and retry policy.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PricePoint, error)
	Name() string
}
