package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger/internal/log"
)

func newSQLiteRepository(t *testing.T, path string) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(path, log.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t, filepath.Join(t.TempDir(), "expenses.db"))
	txs := sample(t)

	require.NoError(t, repo.Save(ctx, txs))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, views(txs), views(loaded))
}

func TestSQLiteEmptyDatabase(t *testing.T) {
	repo := newSQLiteRepository(t, filepath.Join(t.TempDir(), "expenses.db"))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSQLiteSaveReplacesContents(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t, filepath.Join(t.TempDir(), "expenses.db"))
	txs := sample(t)

	require.NoError(t, repo.Save(ctx, txs))
	require.NoError(t, repo.Save(ctx, txs[2:]))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, views(txs[2:]), views(loaded))
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "expenses.db")
	txs := sample(t)

	first, err := NewSQLiteRepository(path, log.Discard())
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, txs))
	require.NoError(t, first.Close())

	second := newSQLiteRepository(t, path)
	loaded, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, views(txs), views(loaded))
}

func TestSQLiteInvalidRowEmptiesLoad(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t, filepath.Join(t.TempDir(), "expenses.db"))
	require.NoError(t, repo.Save(ctx, sample(t)))

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO transactions (position, id, type, category, amount, date, note) VALUES (99, 'bad', 'Expense', 'Food', 'abc', '2024-01-01', '')`)
	require.NoError(t, err)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.db")

	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))

	version, dirty, err := SchemaVersion(path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}
