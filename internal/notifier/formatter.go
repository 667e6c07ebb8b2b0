package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"SignalScope/internal/model"
	"SignalScope/internal/strategy"
)

// recentSignals is how many past signal dates a report lists per side.
const recentSignals = 3

// FormatSignalReport formats the latest row of a run into a Telegram message.
func FormatSignalReport(run *model.AnalysisRun) string {
	var b strings.Builder

	latest, ok := run.Analysis.Latest()
	if !ok {
		b.WriteString(fmt.Sprintf("📊 <b>SignalScope</b> | %s (%s)\n\n", html.EscapeString(run.Symbol), run.Period))
		b.WriteString("No price data available.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("📊 <b>SignalScope</b> | %s | %s\n\n",
		html.EscapeString(run.Symbol), latest.Date.Format(model.DateLayout)))

	b.WriteString(fmt.Sprintf("Close: %.2f\n", latest.Close))
	b.WriteString(fmt.Sprintf("RSI: %s\n", value(latest.RSI)))
	b.WriteString(fmt.Sprintf("MACD: %s | Signal: %s\n", value(latest.MACD), value(latest.MACDSignal)))
	b.WriteString(fmt.Sprintf("Bands: %s / %s / %s\n", value(latest.BBLower), value(latest.BBMiddle), value(latest.BBUpper)))
	b.WriteString(fmt.Sprintf("ADX: %s (+DI %s, -DI %s)\n", value(latest.ADX), value(latest.PlusDI), value(latest.MinusDI)))
	b.WriteString(fmt.Sprintf("SAR: %s\n\n", value(latest.SAR)))

	b.WriteString(fmt.Sprintf("💰 <b>Signal:</b> %s\n", verdict(latest.SignalRow)))
	conds := strategy.Conditions(latest.Close, latest.IndicatorRow)
	if allDefined(conds) {
		for _, c := range conds {
			if c.Met {
				b.WriteString(fmt.Sprintf("  ✅ %s %s\n", c.Side, html.EscapeString(c.Name)))
			}
		}
	}
	b.WriteString(fmt.Sprintf("Target buy: %.2f | Target sell: %.2f\n", latest.TargetBuyPrice, latest.TargetSellPrice))

	if !allDefined(conds) {
		b.WriteString("\n⚠️ Not enough history for every rule, flags stay off until all indicators are defined.\n")
	}

	buys := run.Analysis.SignalDates(model.SideBuy)
	sells := run.Analysis.SignalDates(model.SideSell)
	if len(buys) > 0 || len(sells) > 0 {
		b.WriteString("\n📅 <b>Recent signals:</b>\n")
		b.WriteString(fmt.Sprintf("  BUY: %s\n", joinDates(buys)))
		b.WriteString(fmt.Sprintf("  SELL: %s\n", joinDates(sells)))
	}
	return b.String()
}

// FormatStatus describes the most recent run for the /status command.
func FormatStatus(run *model.AnalysisRun, lastErr error, nextRun time.Time) string {
	var b strings.Builder
	b.WriteString("📦 <b>SignalScope status</b>\n\n")
	if run == nil {
		b.WriteString("No analysis has run yet.\n")
	} else {
		b.WriteString(fmt.Sprintf("Last run: %s\n", run.StartedAt.Format("2006-01-02 15:04")))
		b.WriteString(fmt.Sprintf("Instrument: %s (%s) via %s\n", html.EscapeString(run.Symbol), run.Period, run.Source))
		b.WriteString(fmt.Sprintf("Bars: %d | took %v\n", len(run.Analysis.Rows), run.Elapsed.Round(time.Millisecond)))
	}
	if lastErr != nil {
		b.WriteString(fmt.Sprintf("Last error: %s\n", html.EscapeString(lastErr.Error())))
	}
	if !nextRun.IsZero() {
		b.WriteString(fmt.Sprintf("Next run: %s\n", nextRun.Format("2006-01-02 15:04")))
	}
	return b.String()
}

// FormatError formats a failed run.
func FormatError(symbol string, err error) string {
	return fmt.Sprintf("❌ <b>SignalScope</b> | %s\nAnalysis failed: %s\n",
		html.EscapeString(symbol), html.EscapeString(err.Error()))
}

func verdict(s model.SignalRow) string {
	switch {
	case s.Buy && s.Sell:
		return "BUY and SELL"
	case s.Buy:
		return "BUY"
	case s.Sell:
		return "SELL"
	}
	return "none"
}

func value(v float64) string {
	if !model.Defined(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func allDefined(conds []model.Condition) bool {
	for _, c := range conds {
		if !c.Defined {
			return false
		}
	}
	return true
}

func joinDates(dates []time.Time) string {
	if len(dates) == 0 {
		return "-"
	}
	if len(dates) > recentSignals {
		dates = dates[len(dates)-recentSignals:]
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(model.DateLayout)
	}
	return strings.Join(out, ", ")
}
