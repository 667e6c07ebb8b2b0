package strategy

import (
	"SignalScope/internal/model"
)

// Rule thresholds.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
	ADXTrending   = 20.0

	TargetBuyFactor  = 1.05
	TargetSellFactor = 0.95
)

// Clause names, as reported by Conditions.
const (
	ClauseMACDOversold   = "MACD>Signal & RSI<30"
	ClauseBelowLower     = "Close<Lower band"
	ClauseTrendUp        = "ADX>20 & EMA fast>slow"
	ClauseMACDOverbought = "MACD<Signal & RSI>70"
	ClauseAboveUpper     = "Close>Upper band"
	ClauseTrendDown      = "ADX>20 & EMA fast<slow"
)

// Conditions evaluates each clause of the buy and sell rules for one date.
// A clause whose inputs are not all defined is reported as undefined and not met.
func Conditions(close float64, row model.IndicatorRow) []model.Condition {
	macdDefined := defined(row.MACD, row.MACDSignal, row.RSI)
	trendDefined := defined(row.ADX, row.EMAFast, row.EMASlow)

	return []model.Condition{
		{
			Name:    ClauseMACDOversold,
			Side:    model.SideBuy,
			Defined: macdDefined,
			Met:     macdDefined && row.MACD > row.MACDSignal && row.RSI < RSIOversold,
		},
		{
			Name:    ClauseBelowLower,
			Side:    model.SideBuy,
			Defined: defined(close, row.BBLower),
			Met:     defined(close, row.BBLower) && close < row.BBLower,
		},
		{
			Name:    ClauseTrendUp,
			Side:    model.SideBuy,
			Defined: trendDefined,
			Met:     trendDefined && row.ADX > ADXTrending && row.EMAFast > row.EMASlow,
		},
		{
			Name:    ClauseMACDOverbought,
			Side:    model.SideSell,
			Defined: macdDefined,
			Met:     macdDefined && row.MACD < row.MACDSignal && row.RSI > RSIOverbought,
		},
		{
			Name:    ClauseAboveUpper,
			Side:    model.SideSell,
			Defined: defined(close, row.BBUpper),
			Met:     defined(close, row.BBUpper) && close > row.BBUpper,
		},
		{
			Name:    ClauseTrendDown,
			Side:    model.SideSell,
			Defined: trendDefined,
			Met:     trendDefined && row.ADX > ADXTrending && row.EMAFast < row.EMASlow,
		},
	}
}

func defined(values ...float64) bool {
	for _, v := range values {
		if !model.Defined(v) {
			return false
		}
	}
	return true
}
