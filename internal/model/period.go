package model

import (
	"fmt"
	"time"
)

// Period is a calendar lookback window for price history requests.
type Period string

const (
	Period1Month  Period = "1mo"
	Period3Months Period = "3mo"
	Period6Months Period = "6mo"
	Period1Year   Period = "1y"
	Period5Years  Period = "5y"
)

// Periods lists every recognised lookback window.
var Periods = []Period{Period1Month, Period3Months, Period6Months, Period1Year, Period5Years}

// ParsePeriod validates s against the recognised lookback windows.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q (want one of 1mo, 3mo, 6mo, 1y, 5y)", s)
}

// Start returns the first calendar date covered by the period ending at now.
func (p Period) Start(now time.Time) time.Time {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch p {
	case Period1Month:
		return day.AddDate(0, -1, 0)
	case Period3Months:
		return day.AddDate(0, -3, 0)
	case Period6Months:
		return day.AddDate(0, -6, 0)
	case Period5Years:
		return day.AddDate(-5, 0, 0)
	default:
		return day.AddDate(-1, 0, 0)
	}
}

// TradingDays approximates the number of daily bars in the period.
func (p Period) TradingDays() int {
	switch p {
	case Period1Month:
		return 22
	case Period3Months:
		return 63
	case Period6Months:
		return 126
	case Period5Years:
		return 1260
	default:
		return 252
	}
}
