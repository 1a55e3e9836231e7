package calculate

import "math"

// EMA calculates the exponential moving average of values with smoothing
// factor 2/(span+1), in the adjusted form: every output is the weighted mean
// of all inputs seen so far with weights (1-alpha)^age. The first output
// equals the first input. Leading NaN inputs yield NaN outputs.
func EMA(values []float64, span int) []float64 {
	out := nanSlice(len(values))
	if span <= 0 {
		return out
	}

	alpha := 2.0 / float64(span+1)
	decay := 1 - alpha

	var num, den float64
	started := false
	for i, v := range values {
		if math.IsNaN(v) {
			if started {
				out[i] = num / den
			}
			continue
		}

		started = true
		num = v + decay*num
		den = 1 + decay*den
		out[i] = num / den
	}

	return out
}
