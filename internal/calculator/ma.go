package calculator

// SMA computes the simple moving average of values over a trailing window.
// The first period-1 positions of every defined stretch are undefined.
func SMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, invalidPeriod("SMA", period)
	}
	out := undefinedSeries(len(values))
	for _, s := range valueSpans(values) {
		for i := s.start + period - 1; i < s.end; i++ {
			out[i] = windowMean(values[i-period+1 : i+1])
		}
	}
	return out, nil
}

// EMA computes the exponential moving average with smoothing 2/(period+1),
// seeded with the SMA of the first period values.
func EMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, invalidPeriod("EMA", period)
	}
	alpha := 2.0 / float64(period+1)
	out := undefinedSeries(len(values))
	for _, s := range valueSpans(values) {
		if s.len() < period {
			continue
		}
		seed := s.start + period - 1
		ema := windowMean(values[s.start : seed+1])
		out[seed] = ema
		for i := seed + 1; i < s.end; i++ {
			ema += alpha * (values[i] - ema)
			out[i] = ema
		}
	}
	return out, nil
}

func windowMean(w []float64) float64 {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	return sum / float64(len(w))
}
