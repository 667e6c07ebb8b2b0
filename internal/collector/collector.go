package collector

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"SignalScope/internal/engine"
	"SignalScope/internal/metrics"
	"SignalScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	End   time.Time // last generated trading day; defaults to today
	Bars  []model.Bar
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, period model.Period) ([]model.Bar, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return append([]model.Bar(nil), m.Bars...), nil
	}
	end := m.End
	if end.IsZero() {
		end = time.Now()
	}
	return generateMockBars(m.Price, period.TradingDays(), end), nil
}

// generateMockBars builds count weekday bars ending at end, oscillating around basePrice.
func generateMockBars(basePrice float64, count int, end time.Time) []model.Bar {
	bars := make([]model.Bar, count)
	day := calendarDay(end)
	for i := count - 1; i >= 0; i-- {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, -1)
		}
		x := float64(i)
		p := basePrice * (1 + 0.05*math.Sin(x/9) + float64(i-count/2)*0.0005)
		bars[i] = model.Bar{
			Date:   day,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
		day = day.AddDate(0, 0, -1)
	}
	return bars
}

// Collector orchestrates data fetching and the analysis pipeline for one instrument.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Period  model.Period
	Params  engine.Params
	Metrics *metrics.Metrics
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, period model.Period, params engine.Params) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Period: period, Params: params}
}

// Collect fetches the price history and runs the indicator and signal pipeline.
func (c *Collector) Collect(ctx context.Context) (*model.AnalysisRun, error) {
	run := &model.AnalysisRun{
		ID:        uuid.NewString(),
		Symbol:    c.Symbol,
		Period:    c.Period,
		Source:    c.Fetcher.Name(),
		StartedAt: time.Now(),
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, c.Symbol, c.Period)
	if err != nil {
		c.Metrics.RecordFailure(run.Source)
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	series, err := model.NewSeries(c.Symbol, bars)
	if err != nil {
		c.Metrics.RecordFailure("")
		return nil, fmt.Errorf("build series: %w", err)
	}
	if series.Len() == 0 {
		log.Printf("[WARN] run %s: %s returned no bars for %s (%s)", run.ID, run.Source, c.Symbol, c.Period)
	}

	e := engine.New(c.Params)
	e.Observe = c.Metrics.ObserveIndicator
	analysis, err := e.Analyze(series)
	if err != nil {
		c.Metrics.RecordFailure("")
		return nil, fmt.Errorf("analyze %s: %w", c.Symbol, err)
	}

	run.Analysis = analysis
	run.Elapsed = time.Since(run.StartedAt)
	c.Metrics.RecordRun(run)

	log.Printf("[INFO] run %s: analysed %d bars of %s (%s) from %s in %v",
		run.ID, series.Len(), c.Symbol, c.Period, run.Source, run.Elapsed)
	return run, nil
}
