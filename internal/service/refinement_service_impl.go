package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/refinement"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/validation"
)

type refinementService struct {
	engine    *refinement.Engine
	validator *validation.Validator
	repo      repository.RefinementRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver

	mu       sync.Mutex
	sessions map[string]*refinement.Session
}

func NewRefinementService(
	engine *refinement.Engine,
	validator *validation.Validator,
	repo repository.RefinementRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) RefinementService {
	return &refinementService{
		engine:    engine,
		validator: validator,
		repo:      repo,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
		sessions:  make(map[string]*refinement.Session),
	}
}

func (s *refinementService) Start(ctx context.Context, plan *domain.TravelPlan, req domain.UserRequirements) (sess *refinement.Session, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "start-refinement", fields)
	defer func() { done(err) }()

	if plan == nil {
		return nil, fmt.Errorf("%w: plan is required", ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields["plan_id"] = plan.PlanID

	initial, err := s.validator.ValidatePlan(plan, &req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sess = refinement.NewSession(plan, req, initial)
	header := sess.Header()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRefinementRepo(tx).CreateSession(ctx, &header)
	})
	if err != nil {
		return nil, fmt.Errorf("saving refinement session: %w", err)
	}

	fields["session_id"] = sess.ID()
	fields["initial_score"] = initial.Score
	s.cache(sess)
	return sess, nil
}

func (s *refinementService) StartFromFile(ctx context.Context, path, planID string, override RequirementsOverride) (*refinement.Session, error) {
	f, err := importer.LoadPlanFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	f = applyOverride(f, override)
	if errs := importer.ValidatePlanFile(f); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	req, err := requirementsOf(f)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: refinement needs requirements with a budget", ErrInvalidInput)
	}

	for _, ip := range importer.ImportPlans(f) {
		if ip.PlanID != planID {
			continue
		}
		if ip.Err != nil {
			return nil, fmt.Errorf("%w: plan %s: %v", ErrInvalidInput, planID, ip.Err)
		}
		return s.Start(ctx, ip.Plan, *req)
	}
	return nil, fmt.Errorf("%w: plan %q not found in %s", ErrInvalidInput, planID, path)
}

func (s *refinementService) Refine(ctx context.Context, sessionID, feedback string) (out *refinement.Outcome, err error) {
	fields := map[string]any{"session_id": sessionID}
	done := track(ctx, s.observer, "refine-plan", fields)
	defer func() { done(err) }()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out, err = s.engine.Refine(ctx, sess, feedback)
	if err != nil {
		if errors.Is(err, refinement.ErrEmptyFeedback) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRefinementRepo(tx).AppendEntry(ctx, &out.Entry)
	})
	if err != nil {
		// The in-memory session is ahead of the database now; reload it
		// from storage on next use.
		s.evict(sessionID)
		return nil, fmt.Errorf("saving refinement entry: %w", err)
	}

	fields["sequence"] = out.Entry.Sequence
	fields["status"] = string(out.Result.Status)
	fields["score"] = out.Result.Score
	fields["changes"] = len(out.Entry.Changes)
	return out, nil
}

func (s *refinementService) History(ctx context.Context, sessionID string) (*domain.RefinementSession, []domain.RefinementEntry, error) {
	header, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.repo.ListEntries(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return header, entries, nil
}

func (s *refinementService) ListSessions(ctx context.Context, limit int) ([]*domain.RefinementSession, error) {
	return s.repo.ListSessions(ctx, limit)
}

// session returns the cached session or restores it from storage.
func (s *refinementService) session(ctx context.Context, id string) (*refinement.Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	header, entries, err := s.History(ctx, id)
	if err != nil {
		return nil, err
	}
	sess = refinement.RestoreSession(*header, entries)
	if err := sess.Revalidate(s.validator); err != nil {
		return nil, fmt.Errorf("revalidate session %s: %w", id, err)
	}
	return s.cache(sess), nil
}

// cache stores sess unless another caller restored the same session first,
// in which case that one wins.
func (s *refinementService) cache(sess *refinement.Session) *refinement.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[sess.ID()]; ok {
		return existing
	}
	s.sessions[sess.ID()] = sess
	return sess
}

func (s *refinementService) evict(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
