package calculate

import (
	"github.com/Alias1177/scalper/models"
)

// Calculate computes every indicator column for the series
func Calculate(series models.Series, config models.Config) *models.IndicatorSet {
	closes := series.Closes()

	macd, macdSignal := MACD(
		closes,
		config.MACDFastPeriod,
		config.MACDSlowPeriod,
		config.MACDSignalPeriod,
	)

	return &models.IndicatorSet{
		MAShort:    SMA(closes, config.MAShortPeriod),
		MALong:     SMA(closes, config.MALongPeriod),
		RSI:        RSI(closes, config.RSIPeriod),
		MACD:       macd,
		MACDSignal: macdSignal,
	}
}
