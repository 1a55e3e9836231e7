package models

import (
	"time"
)

// Candle represents a single OHLCV price candle
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Series is an ordered window of candles, oldest first
type Series []Candle

// Closes extracts the closing prices of the series
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, candle := range s {
		closes[i] = candle.Close
	}
	return closes
}

// Last returns the most recent candle of the series
func (s Series) Last() (Candle, bool) {
	if len(s) == 0 {
		return Candle{}, false
	}
	return s[len(s)-1], true
}

// IndicatorSet holds indicator columns aligned index-for-index with a Series.
// NaN marks positions where the indicator window is not yet full.
type IndicatorSet struct {
	MAShort    []float64 `json:"ma_short"`
	MALong     []float64 `json:"ma_long"`
	RSI        []float64 `json:"rsi"`
	MACD       []float64 `json:"macd"`
	MACDSignal []float64 `json:"macd_signal"`
}

// Len returns the number of aligned positions
func (s *IndicatorSet) Len() int {
	return len(s.MACD)
}

// Advisory is the composed trade suggestion for one symbol in one evaluation cycle
type Advisory struct {
	Symbol     string    `json:"symbol"`
	Trend      Trend     `json:"trend"`
	Signals    []Signal  `json:"signals"`
	RiskScore  int       `json:"risk_score"`
	Entry      float64   `json:"entry"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"` // Time of the latest candle
}
