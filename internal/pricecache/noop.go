package pricecache

import (
	"context"
	"time"

	"SignalScope/internal/model"
)

// NoopStore is a no-op implementation used when SQLite is not configured.
// It never has cached bars, so every request goes upstream.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) LoadBars(_ context.Context, _ Key, _ time.Time) ([]model.Bar, error) {
	return nil, nil
}

func (n *NoopStore) SaveBars(_ context.Context, _ Key, _ []model.Bar) error { return nil }

func (n *NoopStore) LastFetch(_ context.Context, _ Key, _ model.Period) (time.Time, error) {
	return time.Time{}, nil
}

func (n *NoopStore) MarkFetched(_ context.Context, _ Key, _ model.Period, _ time.Time) error {
	return nil
}

func (n *NoopStore) Close() error { return nil }
