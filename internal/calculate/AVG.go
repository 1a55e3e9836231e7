package calculate

import "math"

// SMA calculates the simple moving average of values over period.
// Positions before the first full window are NaN.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		out[i] = calculateAverage(values[i-period+1 : i+1])
	}

	return out
}

// calculateAverage calculates simple average
func calculateAverage(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	var sum float64
	for _, value := range values {
		sum += value
	}

	return sum / float64(len(values))
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
