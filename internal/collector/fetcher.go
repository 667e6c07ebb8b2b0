package collector

import (
	"context"
	"sort"
	"time"

	"SignalScope/internal/model"
)

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, period model.Period) ([]model.Bar, error)
	Name() string
}

// calendarDay drops the time of day, keeping the calendar date as seen in t's location.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// normalizeBars sorts bars by date and keeps the last bar for any repeated calendar day.
func normalizeBars(bars []model.Bar) []model.Bar {
	for i := range bars {
		bars[i].Date = calendarDay(bars[i].Date)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Date.Equal(b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
