package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"ledger/internal/core"
	"ledger/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps the ledger in one SQLite database file. Rows are
// ordered by their position so Load returns insertion order.
type SQLiteRepository struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %v", core.ErrIO, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %v", core.ErrIO, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", core.ErrIO, err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", core.ErrIO, err)
	}

	return &SQLiteRepository{
		db:     db,
		path:   dbPath,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Path() string { return r.path }

// Load reads every row in position order. A row that does not decode empties
// the whole load, as with a corrupt file.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, category, amount, date, note FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %v", core.ErrIO, err)
	}
	defer rows.Close()

	var records []record
	for rows.Next() {
		var rec record
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Category, &rec.Amount, &rec.Date, &rec.Note); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %v", core.ErrIO, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read transactions: %v", core.ErrIO, err)
	}

	txs, err := decodeRecords(records)
	if err != nil {
		r.logger.WarnContext(ctx, "Ledger database holds invalid rows, starting empty",
			log.FieldPath, r.path, log.FieldError, err)
		return []core.Transaction{}, nil
	}

	r.logger.DebugContext(ctx, "Ledger loaded",
		log.FieldPath, r.path, log.FieldCount, len(txs))
	return txs, nil
}

// Save replaces the table contents in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, txs []core.Transaction) error {
	if err := r.replaceAll(ctx, txs); err != nil {
		r.logger.ErrorContext(ctx, "Failed to save ledger",
			log.FieldPath, r.path, log.FieldError, err)
		return fmt.Errorf("%w: %v", core.ErrIO, err)
	}
	r.logger.InfoContext(ctx, "Ledger saved",
		log.FieldPath, r.path, log.FieldCount, len(txs))
	return nil
}

func (r *SQLiteRepository) replaceAll(ctx context.Context, txs []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (position, id, type, category, amount, date, note) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txs {
		rec := toRecord(t)
		if _, err := stmt.ExecContext(ctx, i+1, rec.ID, rec.Type, rec.Category, rec.Amount, rec.Date, rec.Note); err != nil {
			return fmt.Errorf("insert %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
