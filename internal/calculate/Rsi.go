package calculate

import "math"

// RSI calculates the Relative Strength Index of closes using simple rolling
// averages of gains and losses. The first bar has no predecessor and counts
// as neither gain nor loss, so values are defined from index period-1.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else if change < 0 {
			losses[i] = -change
		}
	}

	for i := period - 1; i < len(closes); i++ {
		avgGain := calculateAverage(gains[i-period+1 : i+1])
		avgLoss := calculateAverage(losses[i-period+1 : i+1])
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if math.IsNaN(avgGain) || math.IsNaN(avgLoss) {
		return math.NaN()
	}

	// No losses in the window saturates the oscillator.
	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	rsi := 100.0 - (100.0 / (1.0 + rs))

	return math.Max(0, math.Min(100, rsi))
}
