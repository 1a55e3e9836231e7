package advisory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Alias1177/scalper/internal/trading/risk"
	"github.com/Alias1177/scalper/models"
)

// ErrNoSignals is returned when an advisory is requested for an empty signal set
var ErrNoSignals = errors.New("no signals to advise on")

// Compose builds the advisory for a symbol from its fired signals and latest candle
func Compose(symbol string, trend models.Trend, signals []models.Signal, latest models.Candle, config models.Config) (*models.Advisory, error) {
	if len(signals) == 0 {
		return nil, ErrNoSignals
	}

	ordered := orderSignals(signals)
	band := risk.DeterminePriceBand(latest, config)
	score := risk.Score(ordered, config)

	adv := &models.Advisory{
		Symbol:     symbol,
		Trend:      trend,
		Signals:    ordered,
		RiskScore:  score,
		Entry:      band.Entry,
		StopLoss:   band.StopLoss,
		TakeProfit: band.TakeProfit,
		Timestamp:  latest.Timestamp,
	}
	adv.Message = FormatMessage(adv, config.MaxRiskScore)

	return adv, nil
}

// orderSignals returns a copy of signals with MACD signals ahead of RSI signals
func orderSignals(signals []models.Signal) []models.Signal {
	ordered := make([]models.Signal, len(signals))
	copy(ordered, signals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i] < ordered[j]
	})
	return ordered
}

// FormatMessage renders the advisory as a Telegram Markdown message
func FormatMessage(adv *models.Advisory, maxRisk int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🚨 *%s Signal* 🚨\n", adv.Symbol)
	fmt.Fprintf(&b, "📊 Trend: %s\n", adv.Trend)
	b.WriteString("🔍 Signals Detected:\n")
	for _, s := range adv.Signals {
		fmt.Fprintf(&b, "• %s\n", s)
	}
	fmt.Fprintf(&b, "⚠️ Risk Level: %d/%d\n", adv.RiskScore, maxRisk)

	fmt.Fprintf(&b, "\n⚡ *Entry Area*: %.4f\n", adv.Entry)
	fmt.Fprintf(&b, "🛑 *Stop Loss*: %.4f\n", adv.StopLoss)
	fmt.Fprintf(&b, "🎯 *Take Profit*: %.4f\n", adv.TakeProfit)

	return b.String()
}
