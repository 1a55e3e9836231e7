package okx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	httpClient "github.com/Alias1177/scalper/internal/platform/http"
	"github.com/Alias1177/scalper/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://www.okx.com"

// Client is the OKX public market data client
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// Ensure the Client implements the CandleClient interface.
var _ models.CandleClient = (*Client)(nil)

// ClientOptions holds options for creating a new OKX client
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new OKX API client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetryTimeout: options.MaxRetryTimeout,
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient.NewClient(httpOpts),
		logger:     log.With().Str("component", "okx_client").Logger(),
	}
}

// GetCandles fetches the latest limit candles of the given bar size, oldest first
func (c *Client) GetCandles(ctx context.Context, symbol string, bar string, limit int) (models.Series, error) {
	params := url.Values{}
	params.Add("instId", symbol)
	params.Add("bar", bar)
	params.Add("limit", strconv.Itoa(limit))

	endpoint := c.baseURL + "/api/v5/market/candles?" + params.Encode()

	c.logger.Debug().Str("url", endpoint).Msg("Fetching candles")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching candles (%s) for %s: %w", bar, symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	series, err := ParseCandles(body)
	if err != nil {
		c.logger.Error().Err(err).Str("symbol", symbol).Str("response", string(body)).Msg("Error parsing candles")
		return nil, err
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(series)).Msg("Fetched candles")
	return series, nil
}

// ParseCandles parses an OKX candles response. OKX returns rows newest first as
// [ts, open, high, low, close, vol, ...] strings; the series is returned oldest first.
func ParseCandles(body []byte) (models.Series, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid json response")
	}

	code := gjson.GetBytes(body, "code").String()
	if code != "0" {
		return nil, fmt.Errorf("okx api error (code %s): %s", code, gjson.GetBytes(body, "msg").String())
	}

	rows := gjson.GetBytes(body, "data").Array()
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty data returned")
	}

	series := make(models.Series, len(rows))
	for idx, row := range rows {
		candle, err := parseCandle(row)
		if err != nil {
			return nil, fmt.Errorf("parsing candle %d: %w", idx, err)
		}
		series[len(rows)-1-idx] = candle
	}

	return series, nil
}

// parseCandle parses a single candle row.
func parseCandle(row gjson.Result) (models.Candle, error) {
	var candle models.Candle

	fields := row.Array()
	if len(fields) < 6 {
		return candle, fmt.Errorf("expected at least 6 fields, got %d: %w", len(fields), models.ErrMalformedCandle)
	}

	ts, err := strconv.ParseInt(fields[0].String(), 10, 64)
	if err != nil {
		return candle, fmt.Errorf("timestamp %q: %w", fields[0].String(), models.ErrMalformedCandle)
	}
	candle.Timestamp = time.UnixMilli(ts).UTC()

	targets := []*float64{&candle.Open, &candle.High, &candle.Low, &candle.Close, &candle.Volume}
	for i, target := range targets {
		raw := fields[i+1].String()
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return candle, fmt.Errorf("field %d value %q: %w", i+1, raw, models.ErrMalformedCandle)
		}
		*target = value
	}

	return candle, nil
}
