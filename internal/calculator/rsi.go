package calculator

// RSI computes the Wilder-smoothed relative strength index.
// The first value of each defined stretch appears once period changes exist,
// i.e. at offset period.
func RSI(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, invalidPeriod("RSI", period)
	}
	out := undefinedSeries(len(values))
	p := float64(period)
	for _, s := range valueSpans(values) {
		var avgGain, avgLoss float64
		for i := s.start + 1; i < s.end; i++ {
			gain, loss := 0.0, 0.0
			if change := values[i] - values[i-1]; change > 0 {
				gain = change
			} else {
				loss = -change
			}

			changes := i - s.start
			if changes < period {
				avgGain += gain
				avgLoss += loss
				continue
			}
			if changes == period {
				avgGain = (avgGain + gain) / p
				avgLoss = (avgLoss + loss) / p
			} else {
				avgGain = (avgGain*(p-1) + gain) / p
				avgLoss = (avgLoss*(p-1) + loss) / p
			}
			out[i] = rsiFromAverages(avgGain, avgLoss)
		}
	}
	return out, nil
}

// rsiFromAverages maps smoothed gains and losses onto [0, 100].
// A window without any movement is neutral.
func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgGain == 0 && avgLoss == 0 {
		return 50.0
	}
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
