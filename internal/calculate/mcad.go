package calculate

// MACD calculates the MACD line (fast EMA minus slow EMA of closes) and its
// signal line (EMA of the MACD line).
func MACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) ([]float64, []float64) {
	fastEMA := EMA(closes, fastPeriod)
	slowEMA := EMA(closes, slowPeriod)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine := EMA(macdLine, signalPeriod)

	return macdLine, signalLine
}
