package backend

import (
	"context"
	"fmt"

	"ledger/internal/amqp"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		backend storage.Backend
		err     error
	)
	switch config.Type {
	case FileBackend:
		backend, err = f.createFileBackend(ctx, config)
	case SQLiteBackend:
		backend, err = f.createSQLiteBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	result := &BackendResult{Backend: backend}
	if client := f.createPublisher(ctx, config); client != nil {
		result.Publisher = client
	}
	return result, nil
}

func (f *DefaultFactory) createFileBackend(ctx context.Context, config Config) (storage.Backend, error) {
	store, err := storage.NewFileStore(config.FilePath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file backend: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized file backend",
		log.FieldPath, config.FilePath,
		log.FieldFormat, store.Format())
	return store, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (storage.Backend, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", log.FieldPath, config.SQLiteDBPath)
	return repo, nil
}

// createPublisher returns nil when notifications are off or the broker is
// unreachable. The ledger works offline either way.
func (f *DefaultFactory) createPublisher(ctx context.Context, config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPRoutingPrefix, f.logger)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without notifications",
			log.FieldError, err)
		return nil
	}

	f.logger.InfoContext(ctx, "Initialized AMQP client",
		log.FieldExchange, config.AMQPExchange)
	return client
}
