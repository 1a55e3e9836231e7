package risk

import (
	"github.com/Alias1177/scalper/models"
)

// PriceBand holds the suggested entry, stop-loss and take-profit levels
type PriceBand struct {
	Entry      float64 `json:"entry"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`
	Range      float64 `json:"range"`
}

// Score weighs the fired signals into a risk level within [0, MaxRiskScore].
// Only the bullish cross and oversold RSI contribute.
func Score(signals []models.Signal, config models.Config) int {
	score := 0
	if models.HasSignal(signals, models.MACDBullishCross) {
		score += config.BullishCrossWeight
	}
	if models.HasSignal(signals, models.RSIOversold) {
		score += config.OversoldWeight
	}

	if score > config.MaxRiskScore {
		score = config.MaxRiskScore
	}
	if score < 0 {
		score = 0
	}

	return score
}

// DeterminePriceBand derives the price levels from the latest candle's high-low range.
// Levels are always framed as a long position regardless of trend.
func DeterminePriceBand(candle models.Candle, config models.Config) PriceBand {
	barRange := candle.High - candle.Low
	entry := candle.Close

	return PriceBand{
		Entry:      entry,
		StopLoss:   entry - barRange*config.StopLossMultiplier,
		TakeProfit: entry + barRange*config.TakeProfitMultiplier,
		Range:      barRange,
	}
}
