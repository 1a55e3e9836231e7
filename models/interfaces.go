package models

import "context"

// CandleClient fetches a window of candles for one instrument
type CandleClient interface {
	GetCandles(ctx context.Context, symbol string, bar string, limit int) (Series, error)
}

// MessageSender delivers a formatted text message to a destination
type MessageSender interface {
	Send(ctx context.Context, chatID int64, text string) error
}
