package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlanFile is the top-level JSON document written by the plan generator.
type PlanFile struct {
	GeneratedAt  string              `json:"generated_at,omitempty"`
	Destination  string              `json:"destination"`
	Requirements *RequirementsImport `json:"requirements,omitempty"`
	Plans        []PlanImport        `json:"plans"`
}

// RequirementsImport mirrors the user requirements the plans were built for.
type RequirementsImport struct {
	Destination  string         `json:"destination,omitempty"`
	StartDate    string         `json:"start_date,omitempty"`
	DurationDays *int           `json:"duration_days,omitempty"`
	Budget       Number         `json:"budget"`
	Travelers    *int           `json:"travelers,omitempty"`
	Preferences  map[string]any `json:"preferences,omitempty"`
}

// PlanImport is one generated itinerary. A nil DailyPlans means the key was
// absent (or null) in the document.
type PlanImport struct {
	PlanID         string                `json:"plan_id"`
	PlanName       string                `json:"plan_name,omitempty"`
	Theme          string                `json:"theme,omitempty"`
	Pace           string                `json:"pace,omitempty"`
	DailyPlans     *[]DayImport          `json:"daily_plans"`
	Accommodation  *AccommodationImport  `json:"accommodation,omitempty"`
	Transportation *TransportationImport `json:"transportation,omitempty"`
	KeyHighlights  []string              `json:"key_highlights,omitempty"`
}

type DayImport struct {
	DayNumber  int              `json:"day_number"`
	Date       string           `json:"date,omitempty"`
	Theme      string           `json:"theme,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Activities []ActivityImport `json:"activities"`
}

// ActivityImport uses lenient field types so one bad activity does not make
// the whole document unreadable.
type ActivityImport struct {
	Time          Text   `json:"time"`
	Name          Text   `json:"name"`
	Location      Text   `json:"location,omitempty"`
	Description   Text   `json:"description,omitempty"`
	EstimatedCost Number `json:"estimated_cost"`
	DurationHours Number `json:"duration_hours"`
	Category      Text   `json:"category,omitempty"`
	Source        Text   `json:"source,omitempty"`
}

type AccommodationImport struct {
	Name         string `json:"name,omitempty"`
	Type         string `json:"type,omitempty"`
	Location     string `json:"location,omitempty"`
	CostPerNight Number `json:"cost_per_night"`
	TotalNights  *int   `json:"total_nights,omitempty"`
}

type TransportationImport struct {
	Arrival            string `json:"arrival,omitempty"`
	Daily              string `json:"daily,omitempty"`
	EstimatedDailyCost Number `json:"estimated_daily_cost"`
}

// LoadPlanFile reads and parses a plan file from disk.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return ParsePlanFile(data)
}

// ParsePlanFile parses a plan file document.
func ParsePlanFile(data []byte) (*PlanFile, error) {
	var f PlanFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &f, nil
}

// ParsePlan parses a single plan object, as returned by the reviser.
func ParsePlan(data []byte) (*PlanImport, error) {
	var p PlanImport
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	return &p, nil
}
