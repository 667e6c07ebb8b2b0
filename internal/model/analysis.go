package model

import "time"

// AnalysisRow is one date of the output table: raw prices plus every derived field.
type AnalysisRow struct {
	Bar
	IndicatorRow
	SignalRow
}

// Analysis is the date-indexed output table for one series.
type Analysis struct {
	Symbol string
	Rows   []AnalysisRow

	// Column labels derived from the indicator windows, e.g. "SMA_50".
	SMAShortLabel string
	SMALongLabel  string
	EMAFastLabel  string
	EMASlowLabel  string
}

// Latest returns the most recent row, or false for an empty table.
func (a *Analysis) Latest() (AnalysisRow, bool) {
	if len(a.Rows) == 0 {
		return AnalysisRow{}, false
	}
	return a.Rows[len(a.Rows)-1], true
}

// SignalDates returns the dates on which the given side fired, oldest first.
func (a *Analysis) SignalDates(side Side) []time.Time {
	var dates []time.Time
	for _, r := range a.Rows {
		if (side == SideBuy && r.Buy) || (side == SideSell && r.Sell) {
			dates = append(dates, r.Date)
		}
	}
	return dates
}

// AnalysisRun wraps an Analysis with metadata about how it was produced.
type AnalysisRun struct {
	ID        string
	Symbol    string
	Period    Period
	Source    string
	StartedAt time.Time
	Elapsed   time.Duration
	Analysis  *Analysis
}
