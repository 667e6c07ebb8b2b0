// Package pricecache keeps fetched price history locally so repeated runs do
// not hit the market-data provider. Only raw bars are stored.
package pricecache

import (
	"context"
	"time"

	"SignalScope/internal/model"
)

// Key identifies one cached price history. Bars from different sources are
// never mixed, even for the same symbol.
type Key struct {
	Source string
	Symbol string
}

// Store persists raw daily bars per source and symbol.
type Store interface {
	// LoadBars returns the stored bars for key dated on or after from, oldest first.
	LoadBars(ctx context.Context, key Key, from time.Time) ([]model.Bar, error)
	// SaveBars upserts bars keyed by (source, symbol, date).
	SaveBars(ctx context.Context, key Key, bars []model.Bar) error
	// LastFetch returns when key/period was last refreshed upstream, or the zero time.
	LastFetch(ctx context.Context, key Key, period model.Period) (time.Time, error)
	// MarkFetched records a successful upstream refresh.
	MarkFetched(ctx context.Context, key Key, period model.Period, at time.Time) error
	Close() error
}
