package model

import "math"

// Undefined marks a position where an indicator has insufficient history.
var Undefined = math.NaN()

// Defined reports whether v holds a computed indicator value.
func Defined(v float64) bool { return !math.IsNaN(v) }

// IndicatorSet holds one column per indicator, each aligned with the input series.
type IndicatorSet struct {
	SMAShort   []float64
	SMALong    []float64
	EMAFast    []float64
	EMASlow    []float64
	RSI        []float64
	MACD       []float64
	MACDSignal []float64
	MACDHist   []float64
	BBUpper    []float64
	BBMiddle   []float64
	BBLower    []float64
	StochK     []float64
	StochD     []float64
	ADX        []float64
	PlusDI     []float64
	MinusDI    []float64
	SAR        []float64
}

// IndicatorRow is the set of indicator values for a single date.
type IndicatorRow struct {
	SMAShort   float64
	SMALong    float64
	EMAFast    float64
	EMASlow    float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	MACDHist   float64
	BBUpper    float64
	BBMiddle   float64
	BBLower    float64
	StochK     float64
	StochD     float64
	ADX        float64
	PlusDI     float64
	MinusDI    float64
	SAR        float64
}

// Row returns the indicator values at index i.
func (s *IndicatorSet) Row(i int) IndicatorRow {
	return IndicatorRow{
		SMAShort:   s.SMAShort[i],
		SMALong:    s.SMALong[i],
		EMAFast:    s.EMAFast[i],
		EMASlow:    s.EMASlow[i],
		RSI:        s.RSI[i],
		MACD:       s.MACD[i],
		MACDSignal: s.MACDSignal[i],
		MACDHist:   s.MACDHist[i],
		BBUpper:    s.BBUpper[i],
		BBMiddle:   s.BBMiddle[i],
		BBLower:    s.BBLower[i],
		StochK:     s.StochK[i],
		StochD:     s.StochD[i],
		ADX:        s.ADX[i],
		PlusDI:     s.PlusDI[i],
		MinusDI:    s.MinusDI[i],
		SAR:        s.SAR[i],
	}
}
