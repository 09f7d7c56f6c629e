package backend

import (
	"context"

	"ledger/internal/services"
	"ledger/internal/storage"
)

// BackendResult contains the persistence backend and the optional publisher.
type BackendResult struct {
	Backend storage.Backend
	// Publisher is nil when notifications are disabled or the broker was
	// unreachable at startup.
	Publisher services.EventPublisher
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// File backend
	FilePath string

	// SQLite backend
	SQLiteDBPath string

	// Notifications, optional for both backends
	AMQPURL           string
	AMQPExchange      string
	AMQPRoutingPrefix string
}

// BackendType represents the type of backend
type BackendType string

const (
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
