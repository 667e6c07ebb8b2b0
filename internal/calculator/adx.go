package calculator

import (
	"fmt"
	"math"
)

// ADXResult holds the directional indicators and the average directional index.
type ADXResult struct {
	ADX     []float64
	PlusDI  []float64
	MinusDI []float64
}

// ADX computes Wilder's average directional index.
//
// +DM, -DM and true range are accumulated over the first period-1 changes, then
// Wilder-smoothed; +DI/-DI appear at offset period. ADX is the mean of the first
// period DX values and is then smoothed the same way, so it first appears at
// offset 2*period-1.
func ADX(highs, lows, closes []float64, period int) (*ADXResult, error) {
	if period <= 0 {
		return nil, invalidPeriod("ADX", period)
	}
	if !sameLength(highs, lows, closes) {
		return nil, fmt.Errorf("adx: high, low and close lengths differ")
	}

	n := len(closes)
	res := &ADXResult{
		ADX:     undefinedSeries(n),
		PlusDI:  undefinedSeries(n),
		MinusDI: undefinedSeries(n),
	}
	p := float64(period)

	for _, s := range barSpans(highs, lows, closes) {
		var trSum, plusSum, minusSum, dxSum, adx float64
		for i := s.start + 1; i < s.end; i++ {
			plusDM, minusDM := directionalMovement(highs[i-1], lows[i-1], highs[i], lows[i])
			tr := trueRange(highs[i], lows[i], closes[i-1])

			step := i - s.start
			if step < period {
				trSum += tr
				plusSum += plusDM
				minusSum += minusDM
				continue
			}
			trSum = trSum - trSum/p + tr
			plusSum = plusSum - plusSum/p + plusDM
			minusSum = minusSum - minusSum/p + minusDM

			plusDI, minusDI := 0.0, 0.0
			if trSum != 0 {
				plusDI = 100 * plusSum / trSum
				minusDI = 100 * minusSum / trSum
			}
			res.PlusDI[i] = plusDI
			res.MinusDI[i] = minusDI

			dx := 0.0
			if sum := plusDI + minusDI; sum != 0 {
				dx = 100 * math.Abs(plusDI-minusDI) / sum
			}

			switch {
			case step < 2*period-1:
				dxSum += dx
			case step == 2*period-1:
				adx = (dxSum + dx) / p
				res.ADX[i] = adx
			default:
				adx = (adx*(p-1) + dx) / p
				res.ADX[i] = adx
			}
		}
	}
	return res, nil
}

// directionalMovement returns +DM and -DM between two consecutive bars.
// Only the larger positive move counts; ties count for neither side.
func directionalMovement(prevHigh, prevLow, high, low float64) (plus, minus float64) {
	up := high - prevHigh
	down := prevLow - low
	if up > down && up > 0 {
		plus = up
	}
	if down > up && down > 0 {
		minus = down
	}
	return plus, minus
}

func trueRange(high, low, prevClose float64) float64 {
	return math.Max(high-low, math.Max(math.Abs(high-prevClose), math.Abs(low-prevClose)))
}
