package calculator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

var nan = math.NaN()

// assertSeries compares two columns element-wise, treating NaN as equal to NaN.
func assertSeries(t *testing.T, expected, actual []float64, delta float64) {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return
	}
	for i := range expected {
		if math.IsNaN(expected[i]) {
			assert.Truef(t, math.IsNaN(actual[i]), "index %d: expected undefined, got %v", i, actual[i])
			continue
		}
		assert.InDeltaf(t, expected[i], actual[i], delta, "index %d", i)
	}
}

func countUndefined(values []float64) int {
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// randomWalk returns deterministic high/low/close columns around 100.
func randomWalk(n int, seed int64) (highs, lows, closes []float64) {
	r := rand.New(rand.NewSource(seed))
	highs = make([]float64, n)
	lows = make([]float64, n)
	closes = make([]float64, n)
	price := 100.0
	for i := 0; i < n; i++ {
		price += r.NormFloat64()
		if price < 10 {
			price = 10
		}
		spread := 0.5 + r.Float64()
		closes[i] = price
		highs[i] = price + spread*r.Float64()
		lows[i] = price - spread*r.Float64()
	}
	return highs, lows, closes
}
