// Package strategy derives buy/sell flags and target prices from indicator values.
package strategy

import (
	"SignalScope/internal/model"
)

// Classify produces the signal row for one date from that date's close and indicators.
//
// AND binds tighter than OR:
//
//	buy  = (MACD > Signal AND RSI < 30) OR Close < Lower OR (ADX > 20 AND EMAfast > EMAslow)
//	sell = (MACD < Signal AND RSI > 70) OR Close > Upper OR (ADX > 20 AND EMAfast < EMAslow)
//
// If any value referenced by a rule is undefined, both flags are false rather
// than letting the undefined clause drop out of the OR chain.
func Classify(close float64, row model.IndicatorRow) model.SignalRow {
	sig := model.SignalRow{
		TargetBuyPrice:  close * TargetBuyFactor,
		TargetSellPrice: close * TargetSellFactor,
	}
	if !defined(close, row.MACD, row.MACDSignal, row.RSI, row.BBLower, row.BBUpper, row.ADX, row.EMAFast, row.EMASlow) {
		return sig
	}

	sig.Buy = (row.MACD > row.MACDSignal && row.RSI < RSIOversold) ||
		close < row.BBLower ||
		(row.ADX > ADXTrending && row.EMAFast > row.EMASlow)

	sig.Sell = (row.MACD < row.MACDSignal && row.RSI > RSIOverbought) ||
		close > row.BBUpper ||
		(row.ADX > ADXTrending && row.EMAFast < row.EMASlow)

	return sig
}

// ClassifyAll classifies every date of an indicator set.
func ClassifyAll(closes []float64, set *model.IndicatorSet) []model.SignalRow {
	out := make([]model.SignalRow, len(closes))
	for i, c := range closes {
		out[i] = Classify(c, set.Row(i))
	}
	return out
}
