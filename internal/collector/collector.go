package collector

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"StockSentinel/internal/model"
	"StockSentinel/internal/store"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols without fixed data get a deterministic synthetic series.
type MockFetcher struct {
	Data map[string][]model.PricePoint
	Errs map[string]error
	End  time.Time

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.PricePoint, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol]++
	m.mu.Unlock()

	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Data[symbol]; ok {
		return bars, nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return generateMockBars(symbol, days, end), nil
}

// Calls returns how many times symbol was fetched.
func (m *MockFetcher) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

func generateMockBars(symbol string, count int, end time.Time) []model.PricePoint {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	seed := float64(h.Sum32()%1000) / 10
	base := 50 + seed

	bars := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		x := float64(i)
		p := base * (1 + 0.05*math.Sin(x/6+seed) + 0.001*x)
		bars[i] = model.PricePoint{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Close:  math.Round(p*100) / 100,
			Volume: uint64(1_000_000 + 250_000*math.Cos(x/3+seed)),
		}
	}
	return bars
}

// CachingFetcher serves bars from a BarStore when a fresh copy exists and
// otherwise delegates to Next and stores the result.
type CachingFetcher struct {
	Next  Fetcher
	Store store.BarStore
	TTL   time.Duration
	Now   func() time.Time
	Log   zerolog.Logger
}

// NewCachingFetcher wraps next with a store-backed cache.
func NewCachingFetcher(next Fetcher, st store.BarStore, ttl time.Duration, log zerolog.Logger) *CachingFetcher {
	return &CachingFetcher{Next: next, Store: st, TTL: ttl, Now: time.Now, Log: log}
}

func (c *CachingFetcher) Name() string { return fmt.Sprintf("cached(%s)", c.Next.Name()) }

func (c *CachingFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.PricePoint, error) {
	now := c.Now()
	bars, ok, err := c.Store.LoadBars(ctx, symbol, now.Add(-c.TTL))
	if err != nil {
		c.Log.Warn().Err(err).Str("symbol", symbol).Msg("bar cache lookup failed")
	}
	// a cached series shorter than the requested lookback is a miss
	if ok && len(bars) >= days && days > 0 {
		return bars[len(bars)-days:], nil
	}

	bars, err = c.Next.FetchDailyBars(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	if len(bars) > 0 {
		if err := c.Store.SaveBars(ctx, symbol, bars, now); err != nil {
			c.Log.Warn().Err(err).Str("symbol", symbol).Msg("bar cache save failed")
		}
	}
	return bars, nil
}
