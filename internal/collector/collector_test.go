package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalScope/internal/engine"
	"SignalScope/internal/metrics"
	"SignalScope/internal/model"
)

var friday = time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

func TestMockFetcher_GeneratesWeekdays(t *testing.T) {
	f := &MockFetcher{Price: 100, End: friday}
	bars, err := f.FetchDailyBars(context.Background(), "X", model.Period1Year)
	require.NoError(t, err)
	require.Len(t, bars, model.Period1Year.TradingDays())
	assert.Equal(t, friday, bars[len(bars)-1].Date)
	for i, b := range bars {
		assert.NotEqual(t, time.Saturday, b.Date.Weekday())
		assert.NotEqual(t, time.Sunday, b.Date.Weekday())
		if i > 0 {
			assert.True(t, b.Date.After(bars[i-1].Date))
		}
	}
}

func TestCollector_Collect(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	c := NewCollector(&MockFetcher{Price: 5000, End: friday}, "SPX500", model.Period1Year, engine.DefaultParams())
	c.Metrics = m

	run, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "mock", run.Source)
	assert.Equal(t, model.Period1Year, run.Period)
	assert.Len(t, run.Analysis.Rows, 252)
	assert.Equal(t, "SPX500", run.Analysis.Symbol)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal))

	again, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, run.ID, again.ID)
}

func TestCollector_FetchError(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	c := NewCollector(&MockFetcher{Err: errors.New("boom")}, "X", model.Period1Month, engine.DefaultParams())
	c.Metrics = m

	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchErrors.WithLabelValues("mock")))
}

func TestCollector_InvalidParams(t *testing.T) {
	p := engine.DefaultParams()
	p.ADX = -1
	c := NewCollector(&MockFetcher{Price: 10, End: friday}, "X", model.Period1Month, p)
	_, err := c.Collect(context.Background())
	assert.ErrorIs(t, err, engine.ErrInvalidParameter)
}

func TestCollector_EmptyHistory(t *testing.T) {
	c := NewCollector(&MockFetcher{Bars: []model.Bar{}}, "X", model.Period1Month, engine.DefaultParams())
	run, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, run.Analysis.Rows)
}

func TestNormalizeBars(t *testing.T) {
	bars := []model.Bar{
		{Date: time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC), Close: 3},
		{Date: time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC), Close: 1},
		{Date: time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC), Close: 2},
	}
	out := normalizeBars(bars)
	require.Len(t, out, 2)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), out[0].Date)
	assert.Equal(t, 2.0, out[0].Close)
	assert.Equal(t, 3.0, out[1].Close)
}
