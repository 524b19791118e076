package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/itinera/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ValidationRunRepo stores validation snapshots.
type ValidationRunRepo interface {
	Create(ctx context.Context, run *domain.ValidationRun) error
	GetByID(ctx context.Context, id string) (*domain.ValidationRun, error)
	// List returns runs newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*domain.ValidationRun, error)
	Delete(ctx context.Context, id string) error
}

// RefinementRepo stores refinement sessions and their append-only history.
type RefinementRepo interface {
	CreateSession(ctx context.Context, s *domain.RefinementSession) error
	GetSession(ctx context.Context, id string) (*domain.RefinementSession, error)
	ListSessions(ctx context.Context, limit int) ([]*domain.RefinementSession, error)
	AppendEntry(ctx context.Context, e *domain.RefinementEntry) error
	ListEntries(ctx context.Context, sessionID string) ([]domain.RefinementEntry, error)
}
