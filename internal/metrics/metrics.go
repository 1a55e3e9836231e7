package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Metrics holds all Prometheus metrics for the signal scanner.
type Metrics struct {
	CyclesTotal     prometheus.Counter
	CycleDuration   prometheus.Histogram
	AdvisoriesTotal *prometheus.CounterVec // labels: symbol
	SignalsTotal    *prometheus.CounterVec // labels: signal
	FailuresTotal   *prometheus.CounterVec // labels: symbol, stage
	DeliveryErrors  prometheus.Counter
}

// NewMetrics creates the scanner metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scalper_cycles_total",
			Help: "Total evaluation cycles run",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scalper_cycle_duration_seconds",
			Help:    "Duration of a full fetch, evaluate and deliver cycle",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		AdvisoriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scalper_advisories_total",
			Help: "Advisories composed per symbol",
		}, []string{"symbol"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scalper_signals_total",
			Help: "Signals fired per signal tag",
		}, []string{"signal"}),
		FailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scalper_failures_total",
			Help: "Per-symbol failures by stage",
		}, []string{"symbol", "stage"}),
		DeliveryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scalper_delivery_errors_total",
			Help: "Advisories that could not be delivered",
		}),
	}

	reg.MustRegister(
		m.CyclesTotal,
		m.CycleDuration,
		m.AdvisoriesTotal,
		m.SignalsTotal,
		m.FailuresTotal,
		m.DeliveryErrors,
	)

	return m
}

// Serve exposes the metrics of gatherer on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("Serving metrics")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
