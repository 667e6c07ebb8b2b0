package calculator

import (
	"fmt"
	"math"
)

// sarState is the value carried from one bar to the next by the Parabolic SAR fold.
type sarState struct {
	long bool    // current trend direction
	ep   float64 // extreme point of the current trend
	af   float64 // acceleration factor
	sar  float64 // stop level that applies to the next bar
}

// ParabolicSAR computes Wilder's stop-and-reverse level.
//
// The computation is a single forward fold over the bars. The initial trend is
// taken from the first two bars: a dominant downward move starts short,
// anything else starts long. The stop starts at the first bar's low (or high)
// and the extreme point at the second bar's high (or low), and the second bar
// is its own previous bar, as in TA-Lib. The first bar of each defined
// stretch has no SAR.
func ParabolicSAR(highs, lows []float64, step, max float64) ([]float64, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("%w: SAR acceleration step must be positive, got %v", ErrInvalidPeriod, step)
	}
	if !(max >= step) {
		return nil, fmt.Errorf("%w: SAR maximum %v must be at least the step %v", ErrInvalidPeriod, max, step)
	}
	if !sameLength(highs, lows) {
		return nil, fmt.Errorf("sar: high and low lengths differ")
	}

	out := undefinedSeries(len(highs))
	for _, s := range barSpans(highs, lows) {
		if s.len() < 2 {
			continue
		}
		st := initialSAR(highs, lows, s.start, step)
		for i := s.start + 1; i < s.end; i++ {
			prev := i - 1
			if i == s.start+1 {
				prev = i
			}
			out[i], st = st.advance(highs[prev], lows[prev], highs[i], lows[i], step, max)
		}
	}
	return out, nil
}

func initialSAR(highs, lows []float64, first int, step float64) sarState {
	_, minusDM := directionalMovement(highs[first], lows[first], highs[first+1], lows[first+1])
	if minusDM > 0 {
		return sarState{long: false, ep: lows[first+1], af: step, sar: highs[first]}
	}
	return sarState{long: true, ep: highs[first+1], af: step, sar: lows[first]}
}

// advance applies one bar to the state. It returns the SAR reported for that
// bar and the state to carry into the next one.
func (st sarState) advance(prevHigh, prevLow, high, low, step, max float64) (float64, sarState) {
	if st.long {
		if low <= st.sar {
			// Penetration: reverse to short, stop jumps to the prior extreme.
			sar := math.Max(st.ep, math.Max(prevHigh, high))
			next := sarState{long: false, ep: low, af: step}
			next.sar = math.Max(sar+next.af*(next.ep-sar), math.Max(prevHigh, high))
			return sar, next
		}
		reported := st.sar
		if high > st.ep {
			st.ep = high
			st.af = math.Min(st.af+step, max)
		}
		st.sar = math.Min(reported+st.af*(st.ep-reported), math.Min(prevLow, low))
		return reported, st
	}

	if high >= st.sar {
		// Penetration: reverse to long.
		sar := math.Min(st.ep, math.Min(prevLow, low))
		next := sarState{long: true, ep: high, af: step}
		next.sar = math.Min(sar+next.af*(next.ep-sar), math.Min(prevLow, low))
		return sar, next
	}
	reported := st.sar
	if low < st.ep {
		st.ep = low
		st.af = math.Min(st.af+step, max)
	}
	st.sar = math.Max(reported+st.af*(st.ep-reported), math.Max(prevHigh, high))
	return reported, st
}
