package calculator

import (
	"fmt"
	"math"
)

// BollingerResult holds the three bands, each aligned with the input.
type BollingerResult struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Bollinger computes SMA(period) ± k population standard deviations over the same window.
func Bollinger(values []float64, period int, k float64) (*BollingerResult, error) {
	if period <= 0 {
		return nil, invalidPeriod("Bollinger", period)
	}
	if !(k > 0) {
		return nil, fmt.Errorf("%w: Bollinger deviation multiplier must be positive, got %v", ErrInvalidPeriod, k)
	}
	middle, err := SMA(values, period)
	if err != nil {
		return nil, err
	}
	res := &BollingerResult{
		Upper:  undefinedSeries(len(values)),
		Middle: middle,
		Lower:  undefinedSeries(len(values)),
	}
	for i, mean := range middle {
		if math.IsNaN(mean) {
			continue
		}
		variance := 0.0
		for _, v := range values[i-period+1 : i+1] {
			variance += (v - mean) * (v - mean)
		}
		dev := k * math.Sqrt(variance/float64(period))
		res.Upper[i] = mean + dev
		res.Lower[i] = mean - dev
	}
	return res, nil
}
