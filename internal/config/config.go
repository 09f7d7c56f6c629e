// Package config reads the ledger settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"

	"ledger/internal/log"
	"ledger/internal/storage"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	// Backend selection
	Backend string `env:"LEDGER_BACKEND" envDefault:"file"`

	// Storage
	FilePath     string `env:"LEDGER_FILE" envDefault:"expenses.json"`
	SQLiteDBPath string `env:"LEDGER_SQLITE_PATH" envDefault:"expenses.db"`

	// AMQP notifications, disabled when AMQPURL is empty
	AMQPURL           string `env:"AMQP_URL"`
	AMQPExchange      string `env:"AMQP_EXCHANGE" envDefault:"ledger"`
	AMQPRoutingPrefix string `env:"AMQP_ROUTING_PREFIX" envDefault:"ledger.transaction"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// AMQPEnabled reports whether change notifications are configured.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{BackendFile, BackendSQLite}
	switch c.Backend {
	case BackendFile:
		if c.FilePath == "" {
			errors = append(errors, "ledger file path cannot be empty when using file backend")
		} else if _, err := storage.CodecForPath(c.FilePath); err != nil {
			errors = append(errors, fmt.Sprintf("unsupported ledger file '%s': extension must be .json, .csv, .yaml or .yml", c.FilePath))
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0o755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingPrefix == "" {
			errors = append(errors, "AMQP routing prefix cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
