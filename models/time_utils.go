package models

import (
	"fmt"
	"time"
)

// BarDuration converts an OKX bar size into its duration
func BarDuration(bar string) (time.Duration, error) {
	switch bar {
	case "1m":
		return time.Minute, nil
	case "3m":
		return 3 * time.Minute, nil
	case "5m":
		return 5 * time.Minute, nil
	case "15m":
		return 15 * time.Minute, nil
	case "30m":
		return 30 * time.Minute, nil
	case "1H":
		return time.Hour, nil
	case "2H":
		return 2 * time.Hour, nil
	case "4H":
		return 4 * time.Hour, nil
	case "6H":
		return 6 * time.Hour, nil
	case "12H":
		return 12 * time.Hour, nil
	case "1D":
		return 24 * time.Hour, nil
	}

	return 0, fmt.Errorf("unknown bar size: %q", bar)
}

// WindowSpan estimates the wall-clock span covered by count candles of the given bar size
func WindowSpan(bar string, count int) (time.Duration, error) {
	d, err := BarDuration(bar)
	if err != nil {
		return 0, err
	}
	return d * time.Duration(count), nil
}
