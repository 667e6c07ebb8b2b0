package calculator

import "fmt"

// MACDResult holds the three MACD lines, each aligned with the input.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes EMA(fast) - EMA(slow) and its signal line EMA(macd, signal).
func MACD(values []float64, fast, slow, signal int) (*MACDResult, error) {
	if fast <= 0 {
		return nil, invalidPeriod("MACD fast", fast)
	}
	if slow <= 0 {
		return nil, invalidPeriod("MACD slow", slow)
	}
	if signal <= 0 {
		return nil, invalidPeriod("MACD signal", signal)
	}
	if fast >= slow {
		return nil, fmt.Errorf("%w: MACD fast period %d must be shorter than slow period %d", ErrInvalidPeriod, fast, slow)
	}

	fastEMA, err := EMA(values, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := EMA(values, slow)
	if err != nil {
		return nil, err
	}

	line := make([]float64, len(values))
	for i := range line {
		// NaN on either side propagates through the subtraction.
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine, err := EMA(line, signal)
	if err != nil {
		return nil, err
	}
	hist := make([]float64, len(values))
	for i := range hist {
		hist[i] = line[i] - signalLine[i]
	}
	return &MACDResult{MACD: line, Signal: signalLine, Histogram: hist}, nil
}
