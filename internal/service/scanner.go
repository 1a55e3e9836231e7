package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Alias1177/scalper/internal/engine"
	"github.com/Alias1177/scalper/internal/metrics"
	"github.com/Alias1177/scalper/models"
	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ScannerConfig represents the configuration for the market scanner.
type ScannerConfig struct {
	// Symbols represents the tracked instruments.
	Symbols []string
	// Timeframe is the candle bar size.
	Timeframe string
	// CandleLimit is the number of candles evaluated per cycle.
	CandleLimit int
	// IntervalMinutes is the cadence of evaluation cycles.
	IntervalMinutes int
	// ChatID is the destination chat for advisories.
	ChatID int64
	// Fetcher supplies candle series.
	Fetcher models.CandleClient
	// Sender delivers advisory messages.
	Sender models.MessageSender
	// Engine evaluates series into advisories.
	Engine *engine.Engine
	// Metrics is optional.
	Metrics *metrics.Metrics
	// Logger represents the application logger.
	Logger zerolog.Logger
}

// Scanner runs periodic evaluation cycles over the tracked symbols.
type Scanner struct {
	cfg    *ScannerConfig
	logger zerolog.Logger
}

// CycleReport summarizes a single evaluation cycle.
type CycleReport struct {
	ID        string
	Results   map[string]engine.Result
	Delivered int
}

// NewScanner initializes the market scanner.
func NewScanner(cfg *ScannerConfig) (*Scanner, error) {
	var errs error
	if len(cfg.Symbols) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no symbols provided for scanner"))
	}
	if cfg.Fetcher == nil {
		errs = errors.Join(errs, fmt.Errorf("candle fetcher cannot be nil"))
	}
	if cfg.Sender == nil {
		errs = errors.Join(errs, fmt.Errorf("message sender cannot be nil"))
	}
	if cfg.Engine == nil {
		errs = errors.Join(errs, fmt.Errorf("engine cannot be nil"))
	}
	if cfg.IntervalMinutes <= 0 {
		errs = errors.Join(errs, fmt.Errorf("interval must be positive, got %d", cfg.IntervalMinutes))
	}
	if errs != nil {
		return nil, errs
	}

	return &Scanner{
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "scanner").Logger(),
	}, nil
}

// RunCycle fetches, evaluates and delivers advisories for every tracked symbol.
// A failing symbol is logged and skipped.
func (s *Scanner) RunCycle(ctx context.Context) CycleReport {
	start := time.Now()
	report := CycleReport{
		ID:      uuid.NewString(),
		Results: make(map[string]engine.Result, len(s.cfg.Symbols)),
	}
	logger := s.logger.With().Str("cycle_id", report.ID).Logger()

	seriesBySymbol := make(map[string]models.Series, len(s.cfg.Symbols))
	for _, symbol := range s.cfg.Symbols {
		series, err := s.cfg.Fetcher.GetCandles(ctx, symbol, s.cfg.Timeframe, s.cfg.CandleLimit)
		if err != nil {
			report.Results[symbol] = engine.Result{
				Symbol:  symbol,
				Outcome: engine.Failed,
				Err:     fmt.Errorf("fetching candles: %w", err),
			}
			s.recordFailure(symbol, "fetch")
			continue
		}
		seriesBySymbol[symbol] = series
	}

	for symbol, res := range s.cfg.Engine.Evaluate(seriesBySymbol) {
		report.Results[symbol] = res
	}

	symbols := make([]string, 0, len(report.Results))
	for symbol := range report.Results {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		res := report.Results[symbol]

		switch res.Outcome {
		case engine.Failed:
			logger.Error().Err(res.Err).Str("symbol", symbol).Msg("Error processing symbol")
			if _, fetched := seriesBySymbol[symbol]; fetched {
				s.recordFailure(symbol, "evaluate")
			}

		case engine.Quiet:
			if res.Err != nil {
				logger.Warn().Err(res.Err).Str("symbol", symbol).Msg("Skipping symbol")
				break
			}
			logger.Debug().Str("symbol", symbol).Str("trend", res.Trend.String()).Msg("No signals")

		case engine.Advised:
			s.recordAdvisory(res.Advisory)

			if err := s.cfg.Sender.Send(ctx, s.cfg.ChatID, res.Advisory.Message); err != nil {
				logger.Error().Err(err).Str("symbol", symbol).Msg("Failed to deliver advisory")
				if s.cfg.Metrics != nil {
					s.cfg.Metrics.DeliveryErrors.Inc()
				}
				continue
			}

			report.Delivered++
			logger.Info().
				Str("symbol", symbol).
				Str("trend", res.Trend.String()).
				Int("risk", res.Advisory.RiskScore).
				Msg("Advisory delivered")
		}
	}

	if s.cfg.Metrics != nil {
		s.cfg.Metrics.CyclesTotal.Inc()
		s.cfg.Metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}

	logger.Info().
		Int("symbols", len(s.cfg.Symbols)).
		Int("delivered", report.Delivered).
		Dur("took", time.Since(start)).
		Msg("Cycle completed")

	return report
}

// recordFailure counts a per-symbol failure at the given stage.
func (s *Scanner) recordFailure(symbol string, stage string) {
	if s.cfg.Metrics == nil {
		return
	}
	s.cfg.Metrics.FailuresTotal.WithLabelValues(symbol, stage).Inc()
}

// recordAdvisory counts the advisory and its signals.
func (s *Scanner) recordAdvisory(adv *models.Advisory) {
	if s.cfg.Metrics == nil {
		return
	}
	s.cfg.Metrics.AdvisoriesTotal.WithLabelValues(adv.Symbol).Inc()
	for _, signal := range adv.Signals {
		s.cfg.Metrics.SignalsTotal.WithLabelValues(signal.Tag()).Inc()
	}
}

// Start schedules evaluation cycles at the configured interval and blocks
// until the context is cancelled.
func (s *Scanner) Start(ctx context.Context) error {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(s.cfg.IntervalMinutes).Minutes().SingletonMode().Do(func() {
		s.RunCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling evaluation cycle: %w", err)
	}

	s.logger.Info().
		Strs("symbols", s.cfg.Symbols).
		Str("timeframe", s.cfg.Timeframe).
		Int("interval_minutes", s.cfg.IntervalMinutes).
		Msg("Scanner started")

	scheduler.StartAsync()
	<-ctx.Done()
	scheduler.Stop()

	s.logger.Info().Msg("Scanner stopped")
	return nil
}
