package refinement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/validation"
	"github.com/google/uuid"
)

// DefaultMaxIterations is the number of refinements a session allows.
const DefaultMaxIterations = 5

var (
	// ErrIterationLimit is returned once a session has used all its refinements.
	ErrIterationLimit = errors.New("refinement iteration limit reached")

	// ErrEmptyFeedback is returned for blank feedback.
	ErrEmptyFeedback = errors.New("feedback is empty")
)

// FeedbackParser turns free-text feedback into structured change requests.
type FeedbackParser interface {
	ParseFeedback(ctx context.Context, plan *domain.TravelPlan, feedback string) ([]domain.ChangeRequest, error)
}

// PlanReviser produces a new plan with changes applied. It must not modify plan.
type PlanReviser interface {
	Revise(ctx context.Context, plan *domain.TravelPlan, changes []domain.ChangeRequest, req *domain.UserRequirements) (*domain.TravelPlan, error)
}

// Engine runs the parse, revise, re-validate cycle on sessions.
type Engine struct {
	parser        FeedbackParser
	reviser       PlanReviser
	validator     *validation.Validator
	maxIterations int
	now           func() time.Time
}

type EngineOption func(*Engine)

// WithMaxIterations caps the refinements per session. n < 1 keeps the default.
func WithMaxIterations(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(parser FeedbackParser, reviser PlanReviser, validator *validation.Validator, opts ...EngineOption) *Engine {
	e := &Engine{
		parser:        parser,
		reviser:       reviser,
		validator:     validator,
		maxIterations: DefaultMaxIterations,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) MaxIterations() int { return e.maxIterations }

// Outcome is the result of one successful refinement.
type Outcome struct {
	Entry  domain.RefinementEntry
	Result domain.ValidationResult
}

// Refine applies feedback to the session's current plan. On any error the
// session is left exactly as it was.
func (e *Engine) Refine(ctx context.Context, s *Session, feedback string) (*Outcome, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, ErrEmptyFeedback
	}

	s.refining.Lock()
	defer s.refining.Unlock()

	if s.Iterations() >= e.maxIterations {
		return nil, fmt.Errorf("%w (%d)", ErrIterationLimit, e.maxIterations)
	}

	current := s.Plan()
	req := s.Requirements()

	changes, err := e.parser.ParseFeedback(ctx, current, feedback)
	if err != nil {
		return nil, fmt.Errorf("parsing feedback: %w", err)
	}

	revised, err := e.reviser.Revise(ctx, current, changes, &req)
	if err != nil {
		return nil, fmt.Errorf("revising plan %s: %w", current.PlanID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := e.validator.ValidatePlan(revised, &req)
	if err != nil {
		return nil, fmt.Errorf("validating revised plan: %w", err)
	}

	entry := domain.RefinementEntry{
		ID:        uuid.New().String(),
		SessionID: s.ID(),
		Sequence:  s.Iterations() + 1,
		Timestamp: e.now().UTC(),
		Feedback:  feedback,
		Changes:   changes,
		Status:    result.Status,
		Score:     result.Score,
		Plan:      revised.Clone(),
	}
	s.record(entry, revised, result)

	return &Outcome{Entry: entry, Result: result}, nil
}
