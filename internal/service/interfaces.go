package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/refinement"
)

// ErrInvalidInput marks errors caused by the caller's input rather than by
// the system, such as a rejected plan file.
var ErrInvalidInput = errors.New("invalid input")

// RequirementsOverride replaces parts of the requirements found in a plan
// file. Zero values keep the file's value.
type RequirementsOverride struct {
	Destination  string
	Budget       float64
	DurationDays int
}

// ValidateOptions controls one validation request.
type ValidateOptions struct {
	Override RequirementsOverride
	// Source records where the plans came from (a path, "api").
	Source string
	// Save persists the run.
	Save bool
}

type ValidationService interface {
	ValidateFile(ctx context.Context, path string, opts ValidateOptions) (*domain.ValidationRun, error)
	ValidatePlanFile(ctx context.Context, f *importer.PlanFile, opts ValidateOptions) (*domain.ValidationRun, error)
	GetRun(ctx context.Context, id string) (*domain.ValidationRun, error)
	ListRuns(ctx context.Context, limit int) ([]*domain.ValidationRun, error)
}

type RefinementService interface {
	// Start opens a persisted refinement session on plan.
	Start(ctx context.Context, plan *domain.TravelPlan, req domain.UserRequirements) (*refinement.Session, error)
	// StartFromFile opens a session on the plan labelled planID in a plan file.
	StartFromFile(ctx context.Context, path, planID string, override RequirementsOverride) (*refinement.Session, error)
	Refine(ctx context.Context, sessionID, feedback string) (*refinement.Outcome, error)
	History(ctx context.Context, sessionID string) (*domain.RefinementSession, []domain.RefinementEntry, error)
	ListSessions(ctx context.Context, limit int) ([]*domain.RefinementSession, error)
}
