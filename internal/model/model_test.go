package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestNewSeries(t *testing.T) {
	bars := []Bar{
		{Date: date(2024, 3, 1), Close: 10},
		{Date: date(2024, 3, 4), Close: 11}, // weekend gap is fine
		{Date: date(2024, 3, 5), Close: 12},
	}
	s, err := NewSeries("AAPL", bars)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{10, 11, 12}, s.Closes())
}

func TestNewSeries_RejectsDisorder(t *testing.T) {
	tests := map[string][]Bar{
		"duplicate": {{Date: date(2024, 3, 1)}, {Date: date(2024, 3, 1)}},
		"reversed":  {{Date: date(2024, 3, 2)}, {Date: date(2024, 3, 1)}},
	}
	for name, bars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewSeries("X", bars)
			assert.ErrorIs(t, err, ErrUnorderedSeries)
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods {
		got, err := ParsePeriod(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePeriod("2y")
	assert.Error(t, err)
}

func TestPeriod_Start(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2024, 5, 15), Period1Month.Start(now))
	assert.Equal(t, date(2024, 3, 15), Period3Months.Start(now))
	assert.Equal(t, date(2023, 12, 15), Period6Months.Start(now))
	assert.Equal(t, date(2023, 6, 15), Period1Year.Start(now))
	assert.Equal(t, date(2019, 6, 15), Period5Years.Start(now))
	assert.Less(t, Period1Month.TradingDays(), Period5Years.TradingDays())
}

func TestAnalysis_LatestAndSignalDates(t *testing.T) {
	a := &Analysis{Rows: []AnalysisRow{
		{Bar: Bar{Date: date(2024, 1, 2)}, SignalRow: SignalRow{Buy: true}},
		{Bar: Bar{Date: date(2024, 1, 3)}, SignalRow: SignalRow{Sell: true}},
		{Bar: Bar{Date: date(2024, 1, 4)}, SignalRow: SignalRow{Buy: true, Sell: true}},
	}}
	latest, ok := a.Latest()
	require.True(t, ok)
	assert.Equal(t, date(2024, 1, 4), latest.Date)
	assert.Equal(t, []time.Time{date(2024, 1, 2), date(2024, 1, 4)}, a.SignalDates(SideBuy))
	assert.Equal(t, []time.Time{date(2024, 1, 3), date(2024, 1, 4)}, a.SignalDates(SideSell))
}
