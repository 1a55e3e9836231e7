package models

// Signal is a discrete condition detected on the latest two bars
type Signal int

const (
	MACDBullishCross Signal = iota
	MACDBearishCross
	RSIOversold
	RSIOverbought
)

// Tag returns the stable identifier of the signal
func (s Signal) Tag() string {
	switch s {
	case MACDBullishCross:
		return "MACD_BULLISH_CROSS"
	case MACDBearishCross:
		return "MACD_BEARISH_CROSS"
	case RSIOversold:
		return "RSI_OVERSOLD"
	case RSIOverbought:
		return "RSI_OVERBOUGHT"
	default:
		return "UNKNOWN"
	}
}

// String returns the human readable label used in messages
func (s Signal) String() string {
	switch s {
	case MACDBullishCross:
		return "MACD Bullish Cross"
	case MACDBearishCross:
		return "MACD Bearish Cross"
	case RSIOversold:
		return "RSI Oversold"
	case RSIOverbought:
		return "RSI Overbought"
	default:
		return "Unknown Signal"
	}
}

// MarshalText encodes the signal as its tag
func (s Signal) MarshalText() ([]byte, error) {
	return []byte(s.Tag()), nil
}

// HasSignal reports whether target is present in signals
func HasSignal(signals []Signal, target Signal) bool {
	for _, s := range signals {
		if s == target {
			return true
		}
	}
	return false
}

// Trend is the MA-derived market direction. There is no neutral state.
type Trend int

const (
	Bearish Trend = iota
	Bullish
)

func (t Trend) String() string {
	if t == Bullish {
		return "Bullish"
	}
	return "Bearish"
}

// MarshalText encodes the trend as its label
func (t Trend) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
