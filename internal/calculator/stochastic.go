package calculator

import "fmt"

// StochasticResult holds the smoothed %K and %D lines.
type StochasticResult struct {
	K []float64
	D []float64
}

// Stochastic computes the slow stochastic oscillator:
// raw %K = 100*(close-lowest low)/(highest high-lowest low) over kPeriod,
// %K = SMA(raw, kSmooth), %D = SMA(%K, dSmooth).
// A flat high/low window yields a raw %K of 50.
func Stochastic(highs, lows, closes []float64, kPeriod, kSmooth, dSmooth int) (*StochasticResult, error) {
	if kPeriod <= 0 {
		return nil, invalidPeriod("Stochastic %K", kPeriod)
	}
	if kSmooth <= 0 {
		return nil, invalidPeriod("Stochastic %K smoothing", kSmooth)
	}
	if dSmooth <= 0 {
		return nil, invalidPeriod("Stochastic %D smoothing", dSmooth)
	}
	if !sameLength(highs, lows, closes) {
		return nil, fmt.Errorf("stochastic: high, low and close lengths differ")
	}

	raw := undefinedSeries(len(closes))
	for _, s := range barSpans(highs, lows, closes) {
		for i := s.start + kPeriod - 1; i < s.end; i++ {
			high, low := windowRange(highs, lows, i-kPeriod+1, i+1)
			raw[i] = RangePosition(closes[i], high, low)
		}
	}

	k, err := SMA(raw, kSmooth)
	if err != nil {
		return nil, err
	}
	d, err := SMA(k, dSmooth)
	if err != nil {
		return nil, err
	}
	return &StochasticResult{K: k, D: d}, nil
}
