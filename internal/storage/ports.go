package storage

import (
	"context"

	"ledger/internal/core"
)

// Backend persists the whole ledger at once. Load tolerates missing or
// corrupt data by returning an empty collection; Save overwrites.
type Backend interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, txs []core.Transaction) error
	Close() error
}
