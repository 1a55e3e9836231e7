package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/Alias1177/scalper/internal/advisory"
	"github.com/Alias1177/scalper/internal/analyze"
	"github.com/Alias1177/scalper/internal/calculate"
	"github.com/Alias1177/scalper/models"
	"github.com/rs/zerolog"
)

const (
	// maxWorkers is the maximum number of symbols evaluated concurrently.
	maxWorkers = 8
)

// Outcome classifies the evaluation result of one symbol.
type Outcome int

const (
	// Quiet means no signal fired, or the series was too short to evaluate.
	Quiet Outcome = iota
	// Advised means at least one signal fired and an advisory was composed.
	Advised
	// Failed means the symbol could not be evaluated.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Quiet:
		return "quiet"
	case Advised:
		return "advised"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the per-symbol outcome of an evaluation cycle.
type Result struct {
	Symbol   string
	Outcome  Outcome
	Trend    models.Trend
	Signals  []models.Signal
	Advisory *models.Advisory
	// Err is set for failed results, and for quiet results caused by insufficient data.
	Err error
}

// Engine evaluates candle series into trade advisories.
type Engine struct {
	cfg    models.Config
	logger zerolog.Logger
}

// New validates the config and creates an engine.
func New(cfg models.Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "engine").Logger(),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() models.Config {
	return e.cfg
}

// Evaluate runs every series through the engine. A failing symbol never
// prevents the others from being evaluated.
func (e *Engine) Evaluate(seriesBySymbol map[string]models.Series) map[string]Result {
	symbols := make([]string, 0, len(seriesBySymbol))
	for symbol := range seriesBySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	results := make(map[string]Result, len(symbols))
	var mtx sync.Mutex
	var wg sync.WaitGroup
	workers := make(chan struct{}, maxWorkers)

	for _, symbol := range symbols {
		wg.Add(1)
		workers <- struct{}{}
		go func(symbol string, series models.Series) {
			defer func() {
				<-workers
				wg.Done()
			}()

			res := e.EvaluateSymbol(symbol, series)

			mtx.Lock()
			results[symbol] = res
			mtx.Unlock()
		}(symbol, seriesBySymbol[symbol])
	}

	wg.Wait()

	return results
}

// EvaluateSymbol runs a single series through the indicator, signal and advisory stages.
func (e *Engine) EvaluateSymbol(symbol string, series models.Series) Result {
	res := Result{Symbol: symbol}

	if err := validateSeries(series); err != nil {
		res.Outcome = Failed
		res.Err = err
		return res
	}

	ind := calculate.Calculate(series, e.cfg)

	trend, signals, err := analyze.EvaluateSignals(ind, e.cfg)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientData) {
			res.Outcome = Quiet
			res.Err = err
			return res
		}
		res.Outcome = Failed
		res.Err = err
		return res
	}

	res.Trend = trend
	res.Signals = signals

	if len(signals) == 0 {
		res.Outcome = Quiet
		return res
	}

	latest, _ := series.Last()
	adv, err := advisory.Compose(symbol, trend, signals, latest, e.cfg)
	if err != nil {
		res.Outcome = Failed
		res.Err = fmt.Errorf("composing advisory: %w", err)
		return res
	}

	e.logger.Debug().
		Str("symbol", symbol).
		Str("trend", trend.String()).
		Int("signals", len(signals)).
		Int("risk", adv.RiskScore).
		Msg("Advisory composed")

	res.Outcome = Advised
	res.Advisory = adv
	return res
}

// validateSeries rejects candles with non-finite fields or timestamps out of order.
// Zero timestamps are not checked for ordering.
func validateSeries(series models.Series) error {
	for i, c := range series {
		for _, v := range []float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("candle %d has non-finite field: %w", i, models.ErrMalformedCandle)
			}
		}

		if i == 0 || c.Timestamp.IsZero() || series[i-1].Timestamp.IsZero() {
			continue
		}
		if !c.Timestamp.After(series[i-1].Timestamp) {
			return fmt.Errorf("candle %d timestamp %s not after %s: %w", i,
				c.Timestamp.Format("2006-01-02 15:04:05"),
				series[i-1].Timestamp.Format("2006-01-02 15:04:05"),
				models.ErrMalformedCandle)
		}
	}

	return nil
}
