package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnorderedSeries is returned when bar dates are not strictly increasing.
var ErrUnorderedSeries = errors.New("bar dates must be strictly increasing")

// Bar represents a single daily OHLCV bar.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Series is the ordered price history of one instrument.
type Series struct {
	Symbol string
	Bars   []Bar
}

// NewSeries checks the date ordering of bars and wraps them in a Series.
func NewSeries(symbol string, bars []Bar) (Series, error) {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Date.After(bars[i-1].Date) {
			return Series{}, fmt.Errorf("%w: bar %d (%s) after %s", ErrUnorderedSeries,
				i, bars[i].Date.Format(DateLayout), bars[i-1].Date.Format(DateLayout))
		}
	}
	return Series{Symbol: symbol, Bars: bars}, nil
}

// Len returns the number of bars.
func (s Series) Len() int { return len(s.Bars) }

// Closes returns the closing prices as a new slice.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high prices as a new slice.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows returns the low prices as a new slice.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// DateLayout is the calendar date format used in tables and storage.
const DateLayout = "2006-01-02"
