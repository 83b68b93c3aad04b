package papertrade

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application settings, loaded from the environment with
// an optional .env file. Every field has a usable default so `ppt` works
// out of the box.
type Config struct {
	Storage struct {
		// Backend selects the persistence implementation: "json" for one
		// file per key, "sqlite" for a single database file.
		Backend string `envconfig:"PPT_STORAGE_BACKEND" default:"json"`
		Dir     string `envconfig:"PPT_STORAGE_DIR" default:".papertrade"`
	}

	Portfolio struct {
		Key            string `envconfig:"PPT_PORTFOLIO_KEY" default:"portfolio"`
		InitialBalance string `envconfig:"PPT_INITIAL_BALANCE" default:"10000"`
		Currency       string `envconfig:"PPT_CURRENCY" default:"USDT"`
		// ConfirmFraction is the share of the balance above which an order
		// asks for confirmation, e.g. "0.5" for half the balance.
		ConfirmFraction string `envconfig:"PPT_CONFIRM_FRACTION" default:"0.5"`
	}

	Binance struct {
		RestURL   string        `envconfig:"PPT_BINANCE_REST_URL" default:"https://api.binance.com"`
		StreamURL string        `envconfig:"PPT_BINANCE_STREAM_URL" default:"wss://stream.binance.com:9443"`
		Symbols   []string      `envconfig:"PPT_SYMBOLS" default:"BTCUSDT,ETHUSDT,SOLUSDT"`
		Poll      time.Duration `envconfig:"PPT_POLL_INTERVAL" default:"5s"`
	}
}

// LoadConfig reads the environment, after loading a .env file if one is
// present in the working directory.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment alone may be enough.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("cannot process environment: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Storage.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q (want json or sqlite)", cfg.Storage.Backend)
	}
	if _, err := ParseMoney(cfg.Portfolio.InitialBalance, cfg.Portfolio.Currency); err != nil {
		return fmt.Errorf("invalid initial balance %q: %w", cfg.Portfolio.InitialBalance, err)
	}
	if _, err := ParseQuantity(cfg.Portfolio.ConfirmFraction); err != nil {
		return fmt.Errorf("invalid confirm fraction %q: %w", cfg.Portfolio.ConfirmFraction, err)
	}
	if cfg.Binance.Poll < time.Second {
		return fmt.Errorf("poll interval %s is below 1s", cfg.Binance.Poll)
	}
	if len(cfg.Binance.Symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}
	return nil
}

// OpenStorage creates the configured storage backend.
func (cfg *Config) OpenStorage() (Storage, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		return NewSQLiteStorage(filepath.Join(cfg.Storage.Dir, "papertrade.db"))
	default:
		return NewFileStorage(cfg.Storage.Dir)
	}
}

// InitialBalance returns the configured default starting balance.
func (cfg *Config) InitialBalance() Money {
	m, err := ParseMoney(cfg.Portfolio.InitialBalance, cfg.Portfolio.Currency)
	if err != nil {
		// validated at load time
		panic(err)
	}
	return m
}
