package db_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return db.NewSQLiteUnitOfWork(database)
}

// readDestination reads the destination of a validation run through a fresh transaction.
func readDestination(uow *db.SQLiteUnitOfWork, id string) (string, bool) {
	var val string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT destination FROM validation_runs WHERE id = ?`, id)
		if err := row.Scan(&val); err != nil {
			return nil // not found
		}
		found = true
		return nil
	})
	return val, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO validation_runs (id, destination, validated_at) VALUES (?, ?, '2026-05-01T09:00:00Z')`, "run-1", "Lisbon")
		return err
	})
	require.NoError(t, err)

	val, found := readDestination(uow, "run-1")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, "Lisbon", val)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO validation_runs (id, destination, validated_at) VALUES (?, ?, '2026-05-01T09:00:00Z')`, "run-2", "Porto")
		if err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	_, found := readDestination(uow, "run-2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO validation_runs (id, destination, validated_at) VALUES (?, ?, '2026-05-01T09:00:00Z')`, "run-3", "Faro")
			panic("boom")
		})
	})

	_, found := readDestination(uow, "run-3")
	assert.False(t, found, "row should not exist after panic rollback")
}

func TestWithinTx_CanceledContext(t *testing.T) {
	uow := openTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "itinera.db")

	database, err := db.OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	var mode string
	require.NoError(t, database.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, database.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}
