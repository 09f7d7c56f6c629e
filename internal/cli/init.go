// Package cli holds the interactive ledger menu and the startup helpers used
// by cmd/ledger.
package cli

import (
	"context"

	"github.com/joho/godotenv"

	"ledger/internal/backend"
	"ledger/internal/config"
	"ledger/internal/ledger"
	"ledger/internal/log"
	"ledger/internal/services"
)

// SetupLogger builds the application logger from cfg and installs it as the
// slog default. Logs go to stderr so they never mix with the menu.
func SetupLogger(cfg *config.Config) *log.Logger {
	lc := log.DefaultConfig()
	if cfg != nil {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			lc.Level = level
		}
		lc.Format = cfg.LogFormat
	}
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file when there is one.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Overrides are command-line values that win over the environment.
type Overrides struct {
	FilePath string
	Backend  string
}

// LoadAndValidateConfig reads the environment, applies overrides and
// validates the result.
func LoadAndValidateConfig(o Overrides) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if o.FilePath != "" {
		cfg.FilePath = o.FilePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitService creates the configured backend, wraps it in a LedgerService and
// loads the persisted ledger.
func InitService(ctx context.Context, cfg *config.Config, logger *log.Logger) (*services.LedgerService, error) {
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, bc)
	if err != nil {
		return nil, err
	}

	svc := services.NewLedgerService(ledger.New(), result.Backend, result.Publisher, logger)
	if _, err := svc.Load(ctx); err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}
