package calculator

import "math"

// span is a half-open index range [start, end) of consecutive defined inputs.
type span struct {
	start, end int
}

func (s span) len() int { return s.end - s.start }

// definedSpans splits [0, n) into maximal stretches where defined(i) holds.
// Indicators restart their warm-up at the start of each span, so an undefined
// input never leaks into a computed value.
func definedSpans(n int, defined func(i int) bool) []span {
	var spans []span
	start := -1
	for i := 0; i < n; i++ {
		if defined(i) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, span{start, i})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, n})
	}
	return spans
}

func valueSpans(values []float64) []span {
	return definedSpans(len(values), func(i int) bool { return !math.IsNaN(values[i]) })
}

func barSpans(cols ...[]float64) []span {
	n := len(cols[0])
	return definedSpans(n, func(i int) bool {
		for _, c := range cols {
			if math.IsNaN(c[i]) {
				return false
			}
		}
		return true
	})
}

func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func sameLength(cols ...[]float64) bool {
	for _, c := range cols[1:] {
		if len(c) != len(cols[0]) {
			return false
		}
	}
	return true
}
