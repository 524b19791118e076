package refinement

import (
	"sync"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/validation"
	"github.com/google/uuid"
)

// Session holds the refinement state of one traveller: the plan being
// refined, the requirements it is judged against and the append-only history.
type Session struct {
	id           string
	destination  string
	requirements domain.UserRequirements
	createdAt    time.Time
	original     *domain.TravelPlan
	initial      domain.ValidationResult

	// refining serializes Refine calls on the same session.
	refining sync.Mutex

	mu      sync.RWMutex
	plan    *domain.TravelPlan
	result  domain.ValidationResult
	history []domain.RefinementEntry
}

// NewSession starts a session on plan. initial is the validation result of
// plan as it stands.
func NewSession(plan *domain.TravelPlan, req domain.UserRequirements, initial domain.ValidationResult) *Session {
	return &Session{
		id:           uuid.New().String(),
		destination:  req.Destination,
		requirements: req,
		createdAt:    time.Now().UTC(),
		original:     plan.Clone(),
		initial:      initial,
		plan:         plan.Clone(),
		result:       initial,
	}
}

// RestoreSession rebuilds a session from its persisted header and history.
// The current plan is the plan of the last entry, or the starting plan when
// the history is empty. Only status and score are persisted, so the restored
// result has no issues or warnings until Revalidate is called.
func RestoreSession(header domain.RefinementSession, history []domain.RefinementEntry) *Session {
	initial := domain.ValidationResult{PlanID: header.PlanID, Status: header.InitialStatus, Score: header.InitialScore}
	s := &Session{
		id:           header.ID,
		destination:  header.Destination,
		requirements: header.Requirements,
		createdAt:    header.CreatedAt,
		original:     header.Plan.Clone(),
		initial:      initial,
		plan:         header.Plan.Clone(),
		result:       initial,
		history:      append([]domain.RefinementEntry(nil), history...),
	}
	if n := len(history); n > 0 && history[n-1].Plan != nil {
		last := history[n-1]
		s.plan = last.Plan.Clone()
		s.result = domain.ValidationResult{PlanID: last.Plan.PlanID, Status: last.Status, Score: last.Score}
	}
	return s
}

// Revalidate replaces the current result with a fresh validation of the
// current plan.
func (s *Session) Revalidate(v *validation.Validator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, err := v.ValidatePlan(s.plan, &s.requirements)
	if err != nil {
		return err
	}
	s.result = result
	return nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Requirements() domain.UserRequirements { return s.requirements }

// Header returns the persistable description of the session.
func (s *Session) Header() domain.RefinementSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	updated := s.createdAt
	if n := len(s.history); n > 0 {
		updated = s.history[n-1].Timestamp
	}
	return domain.RefinementSession{
		ID:            s.id,
		PlanID:        s.original.PlanID,
		Destination:   s.destination,
		Requirements:  s.requirements,
		Plan:          s.original.Clone(),
		InitialStatus: s.initial.Status,
		InitialScore:  s.initial.Score,
		CreatedAt:     s.createdAt,
		UpdatedAt:     updated,
	}
}

// Plan returns a copy of the current plan.
func (s *Session) Plan() *domain.TravelPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.plan.Clone()
}

// Result returns the validation result of the current plan.
func (s *Session) Result() domain.ValidationResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// History returns a copy of the refinement history, oldest first.
func (s *Session) History() []domain.RefinementEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RefinementEntry, len(s.history))
	copy(out, s.history)
	for i := range out {
		out[i].Changes = append([]domain.ChangeRequest(nil), out[i].Changes...)
		out[i].Plan = out[i].Plan.Clone()
	}
	return out
}

// Iterations returns the number of recorded refinements.
func (s *Session) Iterations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

func (s *Session) record(entry domain.RefinementEntry, plan *domain.TravelPlan, result domain.ValidationResult) {
	entry.Changes = append([]domain.ChangeRequest(nil), entry.Changes...)
	entry.Plan = entry.Plan.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, entry)
	s.plan = plan
	s.result = result
}
