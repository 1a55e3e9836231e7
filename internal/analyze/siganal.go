package analyze

import (
	"fmt"
	"math"

	"github.com/Alias1177/scalper/models"
)

// EvaluateSignals derives the trend label and the signals fired on the latest bar
func EvaluateSignals(ind *models.IndicatorSet, config models.Config) (models.Trend, []models.Signal, error) {
	n := ind.Len()
	if n < 2 {
		return models.Bearish, nil, fmt.Errorf("need at least 2 bars, got %d: %w", n, models.ErrInsufficientData)
	}

	last := n - 1
	prev := n - 2

	// Every value read below must be defined, otherwise the tail is still warming up.
	required := []struct {
		name  string
		value float64
	}{
		{"ma short", ind.MAShort[last]},
		{"ma long", ind.MALong[last]},
		{"rsi", ind.RSI[last]},
		{"macd", ind.MACD[last]},
		{"macd signal", ind.MACDSignal[last]},
		{"previous macd", ind.MACD[prev]},
		{"previous macd signal", ind.MACDSignal[prev]},
	}
	for _, r := range required {
		if math.IsNaN(r.value) {
			return models.Bearish, nil, fmt.Errorf("%s undefined at bar %d: %w", r.name, n, models.ErrInsufficientData)
		}
	}

	trend := DetermineTrend(ind.MAShort[last], ind.MALong[last])

	signals := make([]models.Signal, 0, 2)

	if signal, ok := DetectMACDCross(ind.MACD[prev], ind.MACDSignal[prev], ind.MACD[last], ind.MACDSignal[last]); ok {
		signals = append(signals, signal)
	}

	if signal, ok := DetectRSIExtreme(ind.RSI[last], config.RSIOversold, config.RSIOverbought); ok {
		signals = append(signals, signal)
	}

	return trend, signals, nil
}

// DetermineTrend is bullish only when the short MA is strictly above the long MA
func DetermineTrend(maShort, maLong float64) models.Trend {
	if maShort > maLong {
		return models.Bullish
	}
	return models.Bearish
}

// DetectMACDCross reports a MACD/signal line cross between the previous and current bar
func DetectMACDCross(prevMACD, prevSignal, macd, signal float64) (models.Signal, bool) {
	switch {
	case prevMACD <= prevSignal && macd > signal:
		return models.MACDBullishCross, true
	case prevMACD >= prevSignal && macd < signal:
		return models.MACDBearishCross, true
	}
	return 0, false
}

// DetectRSIExtreme reports an oversold or overbought RSI. The band between thresholds is inclusive and quiet.
func DetectRSIExtreme(rsi, oversold, overbought float64) (models.Signal, bool) {
	switch {
	case rsi < oversold:
		return models.RSIOversold, true
	case rsi > overbought:
		return models.RSIOverbought, true
	}
	return 0, false
}
