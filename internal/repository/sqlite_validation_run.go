package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SQLiteValidationRunRepo implements ValidationRunRepo using a SQLite database.
type SQLiteValidationRunRepo struct {
	db db.DBTX
}

// NewSQLiteValidationRunRepo creates a new SQLiteValidationRunRepo.
func NewSQLiteValidationRunRepo(conn db.DBTX) *SQLiteValidationRunRepo {
	return &SQLiteValidationRunRepo{db: conn}
}

// Create inserts the run and one row per result. Callers wanting atomicity
// pass a transaction-backed DBTX.
func (r *SQLiteValidationRunRepo) Create(ctx context.Context, run *domain.ValidationRun) error {
	query := `INSERT INTO validation_runs (id, destination, source, validated_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, run.ID, run.Destination, run.Source, formatTime(run.ValidatedAt)); err != nil {
		return fmt.Errorf("inserting validation run: %w", err)
	}

	for i, res := range run.Results {
		issues, err := toJSON("issues", nonNilIssues(res.Issues))
		if err != nil {
			return err
		}
		warnings, err := toJSON("warnings", nonNilStrings(res.Warnings))
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO validation_results (run_id, position, plan_id, status, score, issues_json, warnings_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, res.PlanID, string(res.Status), res.Score, issues, warnings,
		)
		if err != nil {
			return fmt.Errorf("inserting validation result %s: %w", res.PlanID, err)
		}
	}
	return nil
}

func (r *SQLiteValidationRunRepo) GetByID(ctx context.Context, id string) (*domain.ValidationRun, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, destination, source, validated_at FROM validation_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("validation run %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadResults(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *SQLiteValidationRunRepo) List(ctx context.Context, limit int) ([]*domain.ValidationRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, destination, source, validated_at FROM validation_runs
		ORDER BY validated_at DESC, id LIMIT ?`, limitClause(limit))
	if err != nil {
		return nil, fmt.Errorf("listing validation runs: %w", err)
	}

	var runs []*domain.ValidationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating validation runs: %w", err)
	}
	rows.Close()

	// Results are loaded after the cursor is closed; a single-connection
	// pool cannot serve a nested query.
	for _, run := range runs {
		if err := r.loadResults(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *SQLiteValidationRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM validation_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting validation run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("validation run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteValidationRunRepo) loadResults(ctx context.Context, run *domain.ValidationRun) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT plan_id, status, score, issues_json, warnings_json
		FROM validation_results WHERE run_id = ? ORDER BY position`, run.ID)
	if err != nil {
		return fmt.Errorf("loading results of run %s: %w", run.ID, err)
	}
	defer rows.Close()

	run.Results = []domain.ValidationResult{}
	for rows.Next() {
		var res domain.ValidationResult
		var status, issues, warnings string
		if err := rows.Scan(&res.PlanID, &status, &res.Score, &issues, &warnings); err != nil {
			return fmt.Errorf("scanning validation result: %w", err)
		}
		res.Status = domain.ValidationStatus(status)
		if err := fromJSON("issues", issues, &res.Issues); err != nil {
			return err
		}
		if err := fromJSON("warnings", warnings, &res.Warnings); err != nil {
			return err
		}
		run.Results = append(run.Results, res)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating validation results: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.ValidationRun, error) {
	var run domain.ValidationRun
	var validatedAt string
	if err := row.Scan(&run.ID, &run.Destination, &run.Source, &validatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning validation run: %w", err)
	}
	t, err := parseTime("validated_at", validatedAt)
	if err != nil {
		return nil, err
	}
	run.ValidatedAt = t
	return &run, nil
}

func nonNilIssues(issues []domain.ValidationIssue) []domain.ValidationIssue {
	if issues == nil {
		return []domain.ValidationIssue{}
	}
	return issues
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
