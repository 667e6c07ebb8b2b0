package calculator

import "math"

// windowRange returns the highest high and lowest low over highs[from:to] and lows[from:to].
func windowRange(highs, lows []float64, from, to int) (high, low float64) {
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := from; i < to; i++ {
		if highs[i] > high {
			high = highs[i]
		}
		if lows[i] < low {
			low = lows[i]
		}
	}
	return high, low
}

// RangePosition returns where current sits within [low, high], scaled to 0..100.
// A flat range has no direction and is reported as the neutral midpoint 50.
func RangePosition(current, high, low float64) float64 {
	if high == low {
		return 50.0
	}
	pos := 100.0 * (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 100 {
		pos = 100
	}
	return pos
}
