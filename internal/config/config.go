package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Alias1177/scalper/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	TelegramToken   string   `env:"TELEGRAM_API_KEY"`
	ChatID          int64    `env:"CHAT_ID"`
	Symbols         []string `env:"SYMBOLS" envDefault:"ETH-USDT,SOL-USDT,TRX-USDT,XRP-USDT"`
	Timeframe       string   `env:"TIMEFRAME" envDefault:"15m"`
	IntervalMinutes int      `env:"INTERVAL_MINUTES" envDefault:"60"`
	CandleLimit     int      `env:"CANDLE_LIMIT" envDefault:"100"`
	OKXBaseURL      string   `env:"OKX_BASE_URL" envDefault:"https://www.okx.com"`
	RequestTimeout  int      `env:"REQUEST_TIMEOUT" envDefault:"10"` // seconds
	RequestsPerSec  int      `env:"REQUESTS_PER_SEC" envDefault:"5"`
	MaxRetryTimeout int      `env:"MAX_RETRY_TIMEOUT" envDefault:"30"` // seconds
	MetricsAddr     string   `env:"METRICS_ADDR"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`

	Engine models.Config
}

// Load initializes configuration from the .env file at path, if present, and environment variables
func Load(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}

	// Load environment variables from .env file if present
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	} else {
		log.Debug().Str("path", path).Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config
	var errs error

	cfg.TelegramToken = os.Getenv("TELEGRAM_API_KEY")
	if raw := os.Getenv("CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("parsing CHAT_ID %q: %w", raw, err))
		}
		cfg.ChatID = chatID
	}
	cfg.Symbols = splitList(getEnvWithDefault("SYMBOLS", "ETH-USDT,SOL-USDT,TRX-USDT,XRP-USDT"))
	cfg.Timeframe = getEnvWithDefault("TIMEFRAME", "15m")
	cfg.IntervalMinutes = getEnvIntWithDefault("INTERVAL_MINUTES", 60)
	cfg.CandleLimit = getEnvIntWithDefault("CANDLE_LIMIT", 100)
	cfg.OKXBaseURL = getEnvWithDefault("OKX_BASE_URL", "https://www.okx.com")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 10)
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.MaxRetryTimeout = getEnvIntWithDefault("MAX_RETRY_TIMEOUT", 30)
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")

	def := models.DefaultConfig()
	cfg.Engine = models.Config{
		MAShortPeriod:        getEnvIntWithDefault("MA_SHORT_PERIOD", def.MAShortPeriod),
		MALongPeriod:         getEnvIntWithDefault("MA_LONG_PERIOD", def.MALongPeriod),
		RSIPeriod:            getEnvIntWithDefault("RSI_PERIOD", def.RSIPeriod),
		RSIOversold:          getEnvFloatWithDefault("RSI_OVERSOLD", def.RSIOversold),
		RSIOverbought:        getEnvFloatWithDefault("RSI_OVERBOUGHT", def.RSIOverbought),
		MACDFastPeriod:       getEnvIntWithDefault("MACD_FAST_PERIOD", def.MACDFastPeriod),
		MACDSlowPeriod:       getEnvIntWithDefault("MACD_SLOW_PERIOD", def.MACDSlowPeriod),
		MACDSignalPeriod:     getEnvIntWithDefault("MACD_SIGNAL_PERIOD", def.MACDSignalPeriod),
		BullishCrossWeight:   getEnvIntWithDefault("RISK_BULLISH_CROSS_WEIGHT", def.BullishCrossWeight),
		OversoldWeight:       getEnvIntWithDefault("RISK_OVERSOLD_WEIGHT", def.OversoldWeight),
		MaxRiskScore:         getEnvIntWithDefault("RISK_MAX_SCORE", def.MaxRiskScore),
		StopLossMultiplier:   getEnvFloatWithDefault("STOP_LOSS_MULTIPLIER", def.StopLossMultiplier),
		TakeProfitMultiplier: getEnvFloatWithDefault("TAKE_PROFIT_MULTIPLIER", def.TakeProfitMultiplier),
	}

	if errs != nil {
		return nil, errs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate asserts the config holds sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.TelegramToken == "" {
		errs = errors.Join(errs, fmt.Errorf("telegram api key cannot be an empty string"))
	}
	if cfg.ChatID == 0 {
		errs = errors.Join(errs, fmt.Errorf("chat id must be set"))
	}
	if len(cfg.Symbols) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no symbols provided"))
	}
	if _, err := models.BarDuration(cfg.Timeframe); err != nil {
		errs = errors.Join(errs, fmt.Errorf("invalid timeframe: %w", err))
	}
	if cfg.IntervalMinutes <= 0 {
		errs = errors.Join(errs, fmt.Errorf("interval minutes must be positive, got %d", cfg.IntervalMinutes))
	}
	if cfg.CandleLimit < cfg.Engine.MALongPeriod {
		errs = errors.Join(errs, fmt.Errorf("candle limit (%d) must cover the ma long period (%d)",
			cfg.CandleLimit, cfg.Engine.MALongPeriod))
	}
	if cfg.RequestTimeout <= 0 || cfg.RequestsPerSec <= 0 || cfg.MaxRetryTimeout < 0 {
		errs = errors.Join(errs, fmt.Errorf("request timeout and rate must be positive"))
	}
	if err := cfg.Engine.Validate(); err != nil {
		errs = errors.Join(errs, err)
	}

	return errs
}

// Level returns the configured log level, falling back to info
func (cfg *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// RequestTimeoutDuration returns the request timeout as a duration
func (cfg *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(cfg.RequestTimeout) * time.Second
}

// MaxRetryTimeoutDuration returns the retry budget as a duration
func (cfg *Config) MaxRetryTimeoutDuration() time.Duration {
	return time.Duration(cfg.MaxRetryTimeout) * time.Second
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
