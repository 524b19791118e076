package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used for trip dates.
const DateLayout = "2006-01-02"

// UserRequirements captures what the traveller asked for. The validator only
// reads Budget and DurationDays.
type UserRequirements struct {
	Destination  string         `json:"destination"`
	StartDate    string         `json:"start_date"`
	DurationDays int            `json:"duration_days"`
	Budget       float64        `json:"budget"`
	Travelers    int            `json:"travelers"`
	Preferences  map[string]any `json:"preferences,omitempty"`
}

// Validate checks the requirements at the boundary.
func (r *UserRequirements) Validate() error {
	if r.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %.2f", r.Budget)
	}
	if r.DurationDays <= 0 {
		return fmt.Errorf("duration_days must be positive, got %d", r.DurationDays)
	}
	if r.Travelers <= 0 {
		return fmt.Errorf("travelers must be positive, got %d", r.Travelers)
	}
	if r.StartDate != "" {
		if _, err := time.Parse(DateLayout, r.StartDate); err != nil {
			return fmt.Errorf("start_date %q is not a YYYY-MM-DD date", r.StartDate)
		}
	}
	return nil
}
