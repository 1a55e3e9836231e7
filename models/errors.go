package models

import "errors"

var (
	// ErrInsufficientData is returned when the series is too short for the requested evaluation.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrMalformedCandle is returned when a candle has missing or non-numeric fields.
	ErrMalformedCandle = errors.New("malformed candle")
)
