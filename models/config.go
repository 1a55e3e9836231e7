package models

import (
	"errors"
	"fmt"
)

// Config holds the indicator windows, thresholds and risk parameters of the signal engine
type Config struct {
	MAShortPeriod        int
	MALongPeriod         int
	RSIPeriod            int
	RSIOversold          float64
	RSIOverbought        float64
	MACDFastPeriod       int
	MACDSlowPeriod       int
	MACDSignalPeriod     int
	BullishCrossWeight   int
	OversoldWeight       int
	MaxRiskScore         int
	StopLossMultiplier   float64
	TakeProfitMultiplier float64
}

// DefaultConfig returns the standard MA20/MA50, RSI14 and MACD(12,26,9) setup
func DefaultConfig() Config {
	return Config{
		MAShortPeriod:        20,
		MALongPeriod:         50,
		RSIPeriod:            14,
		RSIOversold:          30,
		RSIOverbought:        70,
		MACDFastPeriod:       12,
		MACDSlowPeriod:       26,
		MACDSignalPeriod:     9,
		BullishCrossWeight:   2,
		OversoldWeight:       1,
		MaxRiskScore:         3,
		StopLossMultiplier:   1.5,
		TakeProfitMultiplier: 2,
	}
}

// Validate asserts the config holds sane inputs.
func (c Config) Validate() error {
	var errs error

	periods := []struct {
		name  string
		value int
	}{
		{"ma short period", c.MAShortPeriod},
		{"ma long period", c.MALongPeriod},
		{"rsi period", c.RSIPeriod},
		{"macd fast period", c.MACDFastPeriod},
		{"macd slow period", c.MACDSlowPeriod},
		{"macd signal period", c.MACDSignalPeriod},
	}
	for _, p := range periods {
		if p.value <= 0 {
			errs = errors.Join(errs, fmt.Errorf("%s must be positive, got %d", p.name, p.value))
		}
	}

	if c.MAShortPeriod >= c.MALongPeriod {
		errs = errors.Join(errs, fmt.Errorf("ma short period (%d) must be less than ma long period (%d)",
			c.MAShortPeriod, c.MALongPeriod))
	}
	if c.MACDFastPeriod >= c.MACDSlowPeriod {
		errs = errors.Join(errs, fmt.Errorf("macd fast period (%d) must be less than macd slow period (%d)",
			c.MACDFastPeriod, c.MACDSlowPeriod))
	}

	if c.RSIOversold < 0 || c.RSIOverbought > 100 {
		errs = errors.Join(errs, fmt.Errorf("rsi thresholds must lie within [0, 100]"))
	}
	if c.RSIOversold >= c.RSIOverbought {
		errs = errors.Join(errs, fmt.Errorf("rsi oversold (%.2f) must be less than rsi overbought (%.2f)",
			c.RSIOversold, c.RSIOverbought))
	}

	if c.BullishCrossWeight < 0 || c.OversoldWeight < 0 || c.MaxRiskScore < 0 {
		errs = errors.Join(errs, fmt.Errorf("risk weights cannot be negative"))
	}
	if c.StopLossMultiplier < 0 || c.TakeProfitMultiplier < 0 {
		errs = errors.Join(errs, fmt.Errorf("price band multipliers cannot be negative"))
	}

	return errs
}
