package backend

import (
	"fmt"

	"ledger/internal/config"
	"ledger/internal/core"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.Backend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("%w: invalid backend type in config: %s", core.ErrValidation, appConfig.Backend)
	}

	return Config{
		Type:              backendType,
		FilePath:          appConfig.FilePath,
		SQLiteDBPath:      appConfig.SQLiteDBPath,
		AMQPURL:           appConfig.AMQPURL,
		AMQPExchange:      appConfig.AMQPExchange,
		AMQPRoutingPrefix: appConfig.AMQPRoutingPrefix,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("%w: invalid backend type: %s", core.ErrValidation, c.Type)
	}

	switch c.Type {
	case FileBackend:
		if c.FilePath == "" {
			return fmt.Errorf("%w: ledger file path is required for file backend", core.ErrValidation)
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("%w: SQLite database path is required for sqlite backend", core.ErrValidation)
		}
	}

	// AMQP is optional, only the exchange is needed once it is on
	if c.AMQPURL != "" && c.AMQPExchange == "" {
		return fmt.Errorf("%w: AMQP exchange is required when AMQP URL is set", core.ErrValidation)
	}

	return nil
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	return []string{FileBackend.String(), SQLiteBackend.String()}
}
