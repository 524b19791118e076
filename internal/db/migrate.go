package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillSessionUpdatedAt(db); err != nil {
		return fmt.Errorf("backfilling refinement session updated_at: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS validation_runs (
		id           TEXT PRIMARY KEY,
		destination  TEXT NOT NULL DEFAULT '',
		validated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS validation_results (
		run_id        TEXT NOT NULL REFERENCES validation_runs(id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		plan_id       TEXT NOT NULL,
		status        TEXT NOT NULL
		              CHECK(status IN ('APPROVED','APPROVED_WITH_WARNINGS','NEEDS_REVISION')),
		score         REAL NOT NULL CHECK(score >= 0 AND score <= 100),
		issues_json   TEXT NOT NULL DEFAULT '[]',
		warnings_json TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (run_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS refinement_sessions (
		id                TEXT PRIMARY KEY,
		plan_id           TEXT NOT NULL,
		destination       TEXT NOT NULL DEFAULT '',
		requirements_json TEXT NOT NULL,
		plan_json         TEXT NOT NULL,
		initial_status    TEXT NOT NULL,
		initial_score     REAL NOT NULL,
		created_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS refinement_entries (
		id           TEXT PRIMARY KEY,
		session_id   TEXT NOT NULL REFERENCES refinement_sessions(id) ON DELETE CASCADE,
		seq          INTEGER NOT NULL CHECK(seq > 0),
		recorded_at  TEXT NOT NULL,
		feedback     TEXT NOT NULL,
		changes_json TEXT NOT NULL DEFAULT '[]',
		status       TEXT NOT NULL,
		score        REAL NOT NULL,
		plan_json    TEXT,
		UNIQUE (session_id, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_validation_runs_validated ON validation_runs(validated_at)`,
	`CREATE INDEX IF NOT EXISTS idx_validation_results_plan ON validation_results(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refinement_entries_session ON refinement_entries(session_id, seq)`,

	// Where a run came from: a file path, "api", or empty for older rows.
	`ALTER TABLE validation_runs ADD COLUMN source TEXT NOT NULL DEFAULT ''`,

	`ALTER TABLE refinement_sessions ADD COLUMN updated_at TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillSessionUpdatedAt fills updated_at for sessions created before
// the column existed: the time of the latest entry, or created_at when the
// session has none. Idempotent: only rows with an empty updated_at change.
func migrateBackfillSessionUpdatedAt(db *sql.DB) error {
	ctx := context.Background()

	query := `UPDATE refinement_sessions
		SET updated_at = COALESCE(
			(SELECT MAX(e.recorded_at) FROM refinement_entries e WHERE e.session_id = refinement_sessions.id),
			created_at)
		WHERE updated_at = ''`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("updating session timestamps: %w", err)
	}
	return nil
}
