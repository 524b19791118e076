package importer

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/domain"
)

// ValidatePlanFile checks file-level shape. Per-plan problems are reported by
// ValidatePlanImport so that one broken plan does not reject its siblings.
func ValidatePlanFile(f *PlanFile) []error {
	var errs []error

	if len(f.Plans) == 0 {
		errs = append(errs, fmt.Errorf("plans: at least one plan is required"))
	}
	if f.Requirements != nil {
		if _, err := ConvertRequirements(f.Requirements, f.Destination); err != nil {
			errs = append(errs, fmt.Errorf("requirements: %w", err))
		}
	}

	seen := make(map[string]bool, len(f.Plans))
	for i, p := range f.Plans {
		if p.PlanID == "" {
			continue
		}
		if seen[p.PlanID] {
			errs = append(errs, fmt.Errorf("plans[%d].plan_id: duplicate plan_id %q", i, p.PlanID))
		}
		seen[p.PlanID] = true
	}

	return errs
}

// ValidatePlanImport reports top-level shape problems of one plan as
// *domain.MalformedPlanError values. Activity-level problems are not errors;
// Convert records them as activity defects.
func ValidatePlanImport(p *PlanImport) []error {
	var errs []error
	malformed := func(field, format string, args ...any) {
		errs = append(errs, &domain.MalformedPlanError{PlanID: p.PlanID, Field: field, Reason: fmt.Sprintf(format, args...)})
	}

	if p.PlanID == "" {
		malformed("plan_id", "is required")
	}
	if p.Pace != "" && !domain.ValidPaces[p.Pace] {
		malformed("pace", "invalid value %q", p.Pace)
	}

	if p.DailyPlans == nil {
		malformed("daily_plans", "is required")
	} else {
		dayNumbers := make(map[int]bool, len(*p.DailyPlans))
		for i, d := range *p.DailyPlans {
			field := fmt.Sprintf("daily_plans[%d].day_number", i)
			if d.DayNumber <= 0 {
				malformed(field, "must be positive, got %d", d.DayNumber)
				continue
			}
			if dayNumbers[d.DayNumber] {
				malformed(field, "duplicate day %d", d.DayNumber)
			}
			dayNumbers[d.DayNumber] = true
		}
	}

	if a := p.Accommodation; a != nil {
		if a.CostPerNight.Set && !a.CostPerNight.Valid {
			malformed("accommodation.cost_per_night", "%q is not a number", a.CostPerNight.Raw)
		}
		if a.TotalNights != nil && *a.TotalNights < 0 {
			malformed("accommodation.total_nights", "must not be negative")
		}
	}
	if t := p.Transportation; t != nil && t.EstimatedDailyCost.Set && !t.EstimatedDailyCost.Valid {
		malformed("transportation.estimated_daily_cost", "%q is not a number", t.EstimatedDailyCost.Raw)
	}

	return errs
}

// activityDefects lists the shape problems of one activity.
func activityDefects(a *ActivityImport) []string {
	var defects []string

	requiredText := func(field string, t Text) {
		switch {
		case !t.Set:
			defects = append(defects, field+" is missing")
		case !t.Valid:
			defects = append(defects, field+" is not a string")
		case t.Value == "":
			defects = append(defects, field+" is empty")
		}
	}
	optionalText := func(field string, t Text) {
		if t.Set && !t.Valid {
			defects = append(defects, field+" is not a string")
		}
	}

	requiredText("name", a.Name)
	requiredText("time", a.Time)
	optionalText("location", a.Location)
	optionalText("description", a.Description)
	optionalText("category", a.Category)
	optionalText("source", a.Source)

	switch {
	case !a.EstimatedCost.Set:
		defects = append(defects, "estimated_cost is missing")
	case !a.EstimatedCost.Valid:
		defects = append(defects, fmt.Sprintf("estimated_cost %q is not a number", a.EstimatedCost.Raw))
	}

	switch {
	case !a.DurationHours.Set:
		defects = append(defects, "duration_hours is missing")
	case !a.DurationHours.Valid:
		defects = append(defects, fmt.Sprintf("duration_hours %q is not a number", a.DurationHours.Raw))
	case a.DurationHours.Value <= 0:
		defects = append(defects, "duration_hours must be positive")
	}

	return defects
}
