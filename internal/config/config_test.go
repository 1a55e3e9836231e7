package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Alias1177/scalper/models"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

func validConfig() Config {
	return Config{
		TelegramToken:   "token",
		ChatID:          12345,
		Symbols:         []string{"ETH-USDT"},
		Timeframe:       "15m",
		IntervalMinutes: 60,
		CandleLimit:     100,
		RequestTimeout:  10,
		RequestsPerSec:  5,
		MaxRetryTimeout: 30,
		Engine:          models.DefaultConfig(),
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr []string
	}{
		{
			name:    "valid config",
			modify:  func(cfg *Config) {},
			wantErr: nil,
		},
		{
			name: "missing telegram token and chat",
			modify: func(cfg *Config) {
				cfg.TelegramToken = ""
				cfg.ChatID = 0
			},
			wantErr: []string{
				"telegram api key cannot be an empty string",
				"chat id must be set",
			},
		},
		{
			name:    "no symbols",
			modify:  func(cfg *Config) { cfg.Symbols = nil },
			wantErr: []string{"no symbols provided"},
		},
		{
			name:    "unknown timeframe",
			modify:  func(cfg *Config) { cfg.Timeframe = "7m" },
			wantErr: []string{"invalid timeframe"},
		},
		{
			name:    "candle limit below ma long window",
			modify:  func(cfg *Config) { cfg.CandleLimit = 40 },
			wantErr: []string{"candle limit (40) must cover the ma long period (50)"},
		},
		{
			name: "invalid engine config",
			modify: func(cfg *Config) {
				cfg.Engine.MACDFastPeriod = 30
				cfg.Engine.RSIOversold = 80
			},
			wantErr: []string{
				"macd fast period (30) must be less than macd slow period (26)",
				"rsi oversold (80.00) must be less than rsi overbought (70.00)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Errorf("expected error(s) %v, got none", tt.wantErr)
				return
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected error to contain %q, got %v", want, err)
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_KEY", "token")
	t.Setenv("CHAT_ID", "-100200300")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramToken)
	assert.Equal(t, int64(-100200300), cfg.ChatID)
	assert.Equal(t, []string{"ETH-USDT", "SOL-USDT", "TRX-USDT", "XRP-USDT"}, cfg.Symbols)
	assert.Equal(t, "15m", cfg.Timeframe)
	assert.Equal(t, 60, cfg.IntervalMinutes)
	assert.Equal(t, 100, cfg.CandleLimit)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeoutDuration())
	assert.Equal(t, 30*time.Second, cfg.MaxRetryTimeoutDuration())
	if !cmp.Equal(models.DefaultConfig(), cfg.Engine) {
		t.Errorf("mismatching engine config, got %v", cmp.Diff(models.DefaultConfig(), cfg.Engine))
	}
}

func TestLoadEnvFile(t *testing.T) {
	keys := []string{
		"TELEGRAM_API_KEY", "CHAT_ID", "SYMBOLS", "TIMEFRAME", "INTERVAL_MINUTES",
		"RSI_PERIOD", "RSI_OVERSOLD", "STOP_LOSS_MULTIPLIER", "LOG_LEVEL",
	}
	for _, key := range keys {
		if _, ok := os.LookupEnv(key); ok {
			t.Skipf("%s already set in the environment", key)
		}
	}
	t.Cleanup(func() {
		for _, key := range keys {
			os.Unsetenv(key)
		}
	})

	content := strings.Join([]string{
		"TELEGRAM_API_KEY=file-token",
		"CHAT_ID=777",
		"SYMBOLS=BTC-USDT, ETH-USDT ,",
		"TIMEFRAME=5m",
		"INTERVAL_MINUTES=15",
		"RSI_PERIOD=9",
		"RSI_OVERSOLD=25.5",
		"STOP_LOSS_MULTIPLIER=1.25",
		"LOG_LEVEL=debug",
	}, "\n")

	path := filepath.Join(t.TempDir(), ".env")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	assert.NoError(t, err)

	assert.Equal(t, "file-token", cfg.TelegramToken)
	assert.Equal(t, int64(777), cfg.ChatID)
	assert.Equal(t, []string{"BTC-USDT", "ETH-USDT"}, cfg.Symbols)
	assert.Equal(t, "5m", cfg.Timeframe)
	assert.Equal(t, 15, cfg.IntervalMinutes)
	assert.Equal(t, 9, cfg.Engine.RSIPeriod)
	assert.Equal(t, 25.5, cfg.Engine.RSIOversold)
	assert.Equal(t, 1.25, cfg.Engine.StopLossMultiplier)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoadInvalidChatID(t *testing.T) {
	t.Setenv("TELEGRAM_API_KEY", "token")
	t.Setenv("CHAT_ID", "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parsing CHAT_ID"))
}

func TestLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, test := range tests {
		cfg := Config{LogLevel: test.level}
		if got := cfg.Level(); got != test.want {
			t.Errorf("%q: expected %v, got %v", test.level, test.want, got)
		}
	}
}
