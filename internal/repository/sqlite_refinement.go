package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SQLiteRefinementRepo implements RefinementRepo using a SQLite database.
type SQLiteRefinementRepo struct {
	db db.DBTX
}

// NewSQLiteRefinementRepo creates a new SQLiteRefinementRepo.
func NewSQLiteRefinementRepo(conn db.DBTX) *SQLiteRefinementRepo {
	return &SQLiteRefinementRepo{db: conn}
}

const sessionColumns = `id, plan_id, destination, requirements_json, plan_json,
	initial_status, initial_score, created_at, updated_at`

func (r *SQLiteRefinementRepo) CreateSession(ctx context.Context, s *domain.RefinementSession) error {
	reqJSON, err := toJSON("requirements", s.Requirements)
	if err != nil {
		return err
	}
	planJSON, err := toJSON("plan", s.Plan)
	if err != nil {
		return err
	}
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = s.CreatedAt
	}

	query := `INSERT INTO refinement_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.PlanID,
		s.Destination,
		reqJSON,
		planJSON,
		string(s.InitialStatus),
		s.InitialScore,
		formatTime(s.CreatedAt),
		formatTime(updated),
	)
	if err != nil {
		return fmt.Errorf("inserting refinement session: %w", err)
	}
	return nil
}

func (r *SQLiteRefinementRepo) GetSession(ctx context.Context, id string) (*domain.RefinementSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM refinement_sessions WHERE id = ?`, id)
	s, err := scanRefinementSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refinement session %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteRefinementRepo) ListSessions(ctx context.Context, limit int) ([]*domain.RefinementSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM refinement_sessions ORDER BY updated_at DESC, id LIMIT ?`,
		limitClause(limit))
	if err != nil {
		return nil, fmt.Errorf("listing refinement sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.RefinementSession
	for rows.Next() {
		s, err := scanRefinementSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating refinement sessions: %w", err)
	}
	return sessions, nil
}

// AppendEntry stores e and bumps the session's updated_at. The UNIQUE
// (session_id, seq) constraint rejects a second entry with the same sequence.
func (r *SQLiteRefinementRepo) AppendEntry(ctx context.Context, e *domain.RefinementEntry) error {
	changes := e.Changes
	if changes == nil {
		changes = []domain.ChangeRequest{}
	}
	changesJSON, err := toJSON("changes", changes)
	if err != nil {
		return err
	}
	var planJSON any
	if e.Plan != nil {
		s, err := toJSON("plan", e.Plan)
		if err != nil {
			return err
		}
		planJSON = s
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO refinement_entries (id, session_id, seq, recorded_at, feedback, changes_json, status, score, plan_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.SessionID,
		e.Sequence,
		formatTime(e.Timestamp),
		e.Feedback,
		changesJSON,
		string(e.Status),
		e.Score,
		planJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting refinement entry: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE refinement_sessions SET updated_at = ? WHERE id = ?`, formatTime(e.Timestamp), e.SessionID)
	if err != nil {
		return fmt.Errorf("touching refinement session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("refinement session %s: %w", e.SessionID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRefinementRepo) ListEntries(ctx context.Context, sessionID string) ([]domain.RefinementEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, seq, recorded_at, feedback, changes_json, status, score, plan_json
		FROM refinement_entries WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing refinement entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.RefinementEntry{}
	for rows.Next() {
		var e domain.RefinementEntry
		var recordedAt, changesJSON, status string
		var planJSON sql.NullString
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Sequence, &recordedAt, &e.Feedback,
			&changesJSON, &status, &e.Score, &planJSON); err != nil {
			return nil, fmt.Errorf("scanning refinement entry: %w", err)
		}
		e.Status = domain.ValidationStatus(status)
		if e.Timestamp, err = parseTime("recorded_at", recordedAt); err != nil {
			return nil, err
		}
		if err := fromJSON("changes", changesJSON, &e.Changes); err != nil {
			return nil, err
		}
		var plan domain.TravelPlan
		ok, err := nullableJSON("plan", planJSON, &plan)
		if err != nil {
			return nil, err
		}
		if ok {
			e.Plan = &plan
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating refinement entries: %w", err)
	}
	return entries, nil
}

func scanRefinementSession(row rowScanner) (*domain.RefinementSession, error) {
	var s domain.RefinementSession
	var reqJSON, planJSON, status, createdAt, updatedAt string
	err := row.Scan(&s.ID, &s.PlanID, &s.Destination, &reqJSON, &planJSON,
		&status, &s.InitialScore, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning refinement session: %w", err)
	}
	s.InitialStatus = domain.ValidationStatus(status)
	if err := fromJSON("requirements", reqJSON, &s.Requirements); err != nil {
		return nil, err
	}
	if err := fromJSON("plan", planJSON, &s.Plan); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
