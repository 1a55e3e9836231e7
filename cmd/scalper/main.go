package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alias1177/scalper/internal/api/okx"
	"github.com/Alias1177/scalper/internal/config"
	"github.com/Alias1177/scalper/internal/engine"
	"github.com/Alias1177/scalper/internal/metrics"
	"github.com/Alias1177/scalper/internal/notify"
	"github.com/Alias1177/scalper/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logger
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.Logger = logger

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	zerolog.SetGlobalLevel(cfg.Level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eng, err := engine.New(cfg.Engine, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create engine")
	}

	bot, err := notify.NewTelegram(cfg.TelegramToken, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	client := okx.NewClient(okx.ClientOptions{
		BaseURL:         cfg.OKXBaseURL,
		RequestTimeout:  cfg.RequestTimeoutDuration(),
		RequestsPerSec:  cfg.RequestsPerSec,
		MaxRetryTimeout: cfg.MaxRetryTimeoutDuration(),
	})

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, registry, logger); err != nil {
				logger.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	scanner, err := service.NewScanner(&service.ScannerConfig{
		Symbols:         cfg.Symbols,
		Timeframe:       cfg.Timeframe,
		CandleLimit:     cfg.CandleLimit,
		IntervalMinutes: cfg.IntervalMinutes,
		ChatID:          cfg.ChatID,
		Fetcher:         client,
		Sender:          bot,
		Engine:          eng,
		Metrics:         m,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create scanner")
	}

	go bot.HandleCommands(ctx, cfg.IntervalMinutes)

	if err := scanner.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("Scanner stopped with error")
	}
}
