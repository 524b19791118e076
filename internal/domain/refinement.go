package domain

import "time"

// ChangeRequest is one structured edit derived from free-text feedback.
// Target is an activity name, a day number or "overall".
type ChangeRequest struct {
	Type        ChangeType        `json:"type"`
	Description string            `json:"description"`
	Target      string            `json:"target"`
	Details     map[string]string `json:"details"`
}

// RefinementSession is the persisted header of a refinement session.
// Plan and the initial status/score describe the plan the session started
// from, before any refinement.
type RefinementSession struct {
	ID            string           `json:"id"`
	PlanID        string           `json:"plan_id"`
	Destination   string           `json:"destination"`
	Requirements  UserRequirements `json:"requirements"`
	Plan          *TravelPlan      `json:"plan"`
	InitialStatus ValidationStatus `json:"initial_status"`
	InitialScore  float64          `json:"initial_score"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// RefinementEntry is an immutable history record of one refinement.
type RefinementEntry struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	Sequence  int              `json:"sequence"`
	Timestamp time.Time        `json:"timestamp"`
	Feedback  string           `json:"feedback"`
	Changes   []ChangeRequest  `json:"changes"`
	Status    ValidationStatus `json:"validation_status"`
	Score     float64          `json:"validation_score"`
	Plan      *TravelPlan      `json:"plan,omitempty"`
}
