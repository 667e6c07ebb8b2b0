package pricecache

import (
	"context"
	"fmt"
	"log"
	"time"

	"SignalScope/internal/collector"
	"SignalScope/internal/metrics"
	"SignalScope/internal/model"
)

// DefaultTTL is how long a refresh is served from the cache before going upstream again.
const DefaultTTL = 6 * time.Hour

// CachedFetcher serves price history from a Store, refreshing from Upstream
// once the last refresh is older than TTL. Entries are keyed by the upstream's
// Name, so two sources sharing one store never see each other's bars.
type CachedFetcher struct {
	Upstream collector.Fetcher
	Store    Store
	TTL      time.Duration
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

// NewCachedFetcher wraps upstream with store. A non-positive ttl selects DefaultTTL.
func NewCachedFetcher(upstream collector.Fetcher, store Store, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedFetcher{Upstream: upstream, Store: store, TTL: ttl, Now: time.Now}
}

func (c *CachedFetcher) Name() string { return c.Upstream.Name() }

func (c *CachedFetcher) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, period model.Period) ([]model.Bar, error) {
	now := c.now()
	from := period.Start(now.UTC())
	key := Key{Source: c.Upstream.Name(), Symbol: symbol}

	last, err := c.Store.LastFetch(ctx, key, period)
	if err != nil {
		log.Printf("[WARN] price cache lookup for %s failed: %v", symbol, err)
	} else if !last.IsZero() && now.Sub(last) < c.TTL {
		bars, err := c.Store.LoadBars(ctx, key, from)
		if err == nil && len(bars) > 0 {
			c.Metrics.CacheHit()
			return bars, nil
		}
		if err != nil {
			log.Printf("[WARN] price cache read for %s failed: %v", symbol, err)
		}
	}

	c.Metrics.CacheMiss()
	bars, fetchErr := c.Upstream.FetchDailyBars(ctx, symbol, period)
	if fetchErr != nil {
		stale, err := c.Store.LoadBars(ctx, key, from)
		if err == nil && len(stale) > 0 {
			log.Printf("[WARN] %s fetch for %s failed, serving %d cached bars: %v",
				c.Upstream.Name(), symbol, len(stale), fetchErr)
			return stale, nil
		}
		return nil, fetchErr
	}

	if err := c.Store.SaveBars(ctx, key, bars); err != nil {
		log.Printf("[WARN] price cache write for %s failed: %v", symbol, err)
		return bars, nil
	}
	if err := c.Store.MarkFetched(ctx, key, period, now); err != nil {
		log.Printf("[WARN] price cache fetch log for %s failed: %v", symbol, err)
	}
	return bars, nil
}

var _ collector.Fetcher = (*CachedFetcher)(nil)

// Open returns a SQLite store at path, or a NoopStore when path is empty.
func Open(path string) (Store, error) {
	if path == "" {
		return NewNoopStore(), nil
	}
	s, err := NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("price cache: %w", err)
	}
	return s, nil
}
