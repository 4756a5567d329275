package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/quantpair/statarb-tui/internal/marketdata"
	"github.com/quantpair/statarb-tui/internal/models"
)

// SeriesCache holds fetched price series for one screening cycle so that a
// symbol appearing in several pairs is fetched once. In-flight fetches are
// deduplicated per symbol, giving at most one writer per key per cycle.
type SeriesCache struct {
	series *gocache.Cache
	ttl    time.Duration

	mu       sync.Mutex
	inflight map[string]chan struct{}
}

// New creates a series cache. The TTL should match the screening refresh
// interval so each cycle sees fresh data.
func New(ttl time.Duration) *SeriesCache {
	return &SeriesCache{
		series:   gocache.New(ttl, ttl*2),
		ttl:      ttl,
		inflight: make(map[string]chan struct{}),
	}
}

// Get retrieves a cached series
func (c *SeriesCache) Get(symbol string) (models.PriceSeries, bool) {
	if val, found := c.series.Get(symbol); found {
		if s, ok := val.(models.PriceSeries); ok {
			return s, true
		}
	}
	return models.PriceSeries{}, false
}

// Set caches a series for the configured TTL
func (c *SeriesCache) Set(symbol string, s models.PriceSeries) {
	c.series.Set(symbol, s, c.ttl)
}

// Fetch returns the cached series for symbol or fetches it through the
// provider. Concurrent callers for the same symbol share one fetch.
func (c *SeriesCache) Fetch(ctx context.Context, provider marketdata.Provider, symbol string, lookbackDays int) (models.PriceSeries, error) {
	for {
		if s, ok := c.Get(symbol); ok {
			return s, nil
		}

		c.mu.Lock()
		if done, busy := c.inflight[symbol]; busy {
			c.mu.Unlock()
			select {
			case <-done:
				continue // re-check the cache
			case <-ctx.Done():
				return models.PriceSeries{}, ctx.Err()
			}
		}
		done := make(chan struct{})
		c.inflight[symbol] = done
		c.mu.Unlock()

		series, err := provider.DailyCloses(ctx, symbol, lookbackDays)
		if err == nil {
			c.Set(symbol, series)
		}

		c.mu.Lock()
		delete(c.inflight, symbol)
		c.mu.Unlock()
		close(done)

		return series, err
	}
}

// Clear drops all cached series
func (c *SeriesCache) Clear() {
	c.series.Flush()
}

// Len returns the number of cached series
func (c *SeriesCache) Len() int {
	return c.series.ItemCount()
}
