package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"validation_runs", "validation_results", "refinement_sessions", "refinement_entries"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_validation_runs_validated",
		"idx_validation_results_plan",
		"idx_refinement_entries_session",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ResultConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO validation_runs (id, destination, validated_at) VALUES ('r1', 'Lisbon', '2026-05-01T09:00:00Z')`)
	require.NoError(t, err)

	tests := []struct {
		name   string
		status string
		score  float64
		ok     bool
	}{
		{"valid", "APPROVED", 100, true},
		{"unknown status", "MAYBE", 50, false},
		{"score above range", "APPROVED", 101, false},
		{"negative score", "NEEDS_REVISION", -1, false},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Exec(`INSERT INTO validation_results (run_id, position, plan_id, status, score) VALUES ('r1', ?, 'A', ?, ?)`,
				i, tt.status, tt.score)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMigrate_CascadeDeletesResults(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO validation_runs (id, validated_at) VALUES ('r1', '2026-05-01T09:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO validation_results (run_id, position, plan_id, status, score) VALUES ('r1', 0, 'A', 'APPROVED', 100)`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM validation_runs WHERE id = 'r1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM validation_results`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_EntrySequenceUniquePerSession(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO refinement_sessions (id, plan_id, requirements_json, plan_json, initial_status, initial_score, created_at)
		VALUES ('s1', 'A', '{}', '{}', 'APPROVED', 100, '2026-05-01T09:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO refinement_entries (id, session_id, seq, recorded_at, feedback, status, score)
		VALUES (?, 's1', ?, '2026-05-01T10:00:00Z', 'f', 'APPROVED', 100)`
	_, err = db.Exec(insert, "e1", 1)
	require.NoError(t, err)
	_, err = db.Exec(insert, "e2", 1)
	assert.Error(t, err, "duplicate seq")
	_, err = db.Exec(insert, "e3", 0)
	assert.Error(t, err, "seq must be positive")
}
