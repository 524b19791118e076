package importer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

// ImportedPlan is the outcome of importing one plan from a file. Exactly one
// of Plan and Err is set.
type ImportedPlan struct {
	PlanID string
	Plan   *domain.TravelPlan
	Err    error
}

// ImportPlans validates and converts every plan in f, preserving order.
// Call ValidatePlanFile first for file-level problems.
func ImportPlans(f *PlanFile) []ImportedPlan {
	out := make([]ImportedPlan, len(f.Plans))
	for i := range f.Plans {
		p := &f.Plans[i]
		out[i].PlanID = p.PlanID
		if errs := ValidatePlanImport(p); len(errs) > 0 {
			out[i].Err = errors.Join(errs...)
			continue
		}
		out[i].Plan = Convert(p)
	}
	return out
}

// Convert builds a TravelPlan from a validated PlanImport. Day costs and the
// plan total are recomputed from their parts:
// activities + cost_per_night*total_nights + estimated_daily_cost*days.
func Convert(p *PlanImport) *domain.TravelPlan {
	plan := &domain.TravelPlan{
		PlanID:        p.PlanID,
		PlanName:      p.PlanName,
		Theme:         p.Theme,
		Pace:          domain.Pace(domain.Coalesce(p.Pace, string(domain.PaceModerate))),
		KeyHighlights: append([]string{}, p.KeyHighlights...),
		DailyPlans:    []domain.DayPlan{},
	}

	if p.DailyPlans != nil {
		days := append([]DayImport(nil), (*p.DailyPlans)...)
		sort.SliceStable(days, func(i, j int) bool { return days[i].DayNumber < days[j].DayNumber })
		for _, d := range days {
			plan.DailyPlans = append(plan.DailyPlans, convertDay(d))
		}
	}

	if a := p.Accommodation; a != nil {
		plan.Accommodation = domain.Accommodation{
			Name:         strings.TrimSpace(a.Name),
			Type:         a.Type,
			Location:     a.Location,
			CostPerNight: a.CostPerNight.Or(0),
			TotalNights:  domain.Deref(0, a.TotalNights),
		}
	}
	if t := p.Transportation; t != nil {
		plan.Transportation = domain.Transportation{
			Arrival:            t.Arrival,
			Daily:              strings.TrimSpace(t.Daily),
			EstimatedDailyCost: t.EstimatedDailyCost.Or(0),
		}
	}

	Recompute(plan)
	return plan
}

// Recompute refreshes day totals, the cost breakdown and the plan total.
func Recompute(plan *domain.TravelPlan) {
	var activities float64
	for i := range plan.DailyPlans {
		d := &plan.DailyPlans[i]
		d.TotalCost = d.ActivityCost()
		activities += d.TotalCost
	}
	accommodation := plan.Accommodation.TotalCost()
	transportation := plan.Transportation.EstimatedDailyCost * float64(len(plan.DailyPlans))

	plan.CostBreakdown = map[string]float64{
		domain.CostActivities:     activities,
		domain.CostAccommodation:  accommodation,
		domain.CostTransportation: transportation,
	}
	plan.TotalCost = activities + accommodation + transportation
}

func convertDay(d DayImport) domain.DayPlan {
	day := domain.DayPlan{
		DayNumber:  d.DayNumber,
		Date:       d.Date,
		Theme:      d.Theme,
		Notes:      d.Notes,
		Activities: make([]domain.Activity, 0, len(d.Activities)),
	}
	for i := range d.Activities {
		day.Activities = append(day.Activities, convertActivity(&d.Activities[i]))
	}
	return day
}

func convertActivity(a *ActivityImport) domain.Activity {
	return domain.Activity{
		Time:          strings.TrimSpace(a.Time.Value),
		Name:          a.Name.Value,
		Location:      a.Location.Value,
		Description:   a.Description.Value,
		EstimatedCost: a.EstimatedCost.Or(0),
		DurationHours: a.DurationHours.Or(0),
		Category:      strings.ToLower(strings.TrimSpace(a.Category.Value)),
		Source:        strings.TrimSpace(a.Source.Value),
		Defects:       activityDefects(a),
	}
}

// ConvertRequirements builds and validates user requirements. destination is
// used when the requirements omit their own.
func ConvertRequirements(r *RequirementsImport, destination string) (*domain.UserRequirements, error) {
	if !r.Budget.Set {
		return nil, fmt.Errorf("budget is required")
	}
	if !r.Budget.Valid {
		return nil, fmt.Errorf("budget %q is not a number", r.Budget.Raw)
	}
	req := &domain.UserRequirements{
		Destination:  domain.Coalesce(r.Destination, destination),
		StartDate:    r.StartDate,
		DurationDays: domain.Deref(0, r.DurationDays),
		Budget:       r.Budget.Value,
		Travelers:    domain.Deref(1, r.Travelers),
		Preferences:  r.Preferences,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// FromPlan turns a domain plan back into its import form, used to hand the
// current plan to the reviser.
func FromPlan(plan *domain.TravelPlan) *PlanImport {
	days := make([]DayImport, 0, len(plan.DailyPlans))
	for _, d := range plan.DailyPlans {
		day := DayImport{DayNumber: d.DayNumber, Date: d.Date, Theme: d.Theme, Notes: d.Notes}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, ActivityImport{
				Time:          NewText(a.Time),
				Name:          NewText(a.Name),
				Location:      NewText(a.Location),
				Description:   NewText(a.Description),
				EstimatedCost: NewNumber(a.EstimatedCost),
				DurationHours: NewNumber(a.DurationHours),
				Category:      NewText(a.Category),
				Source:        NewText(a.Source),
			})
		}
		days = append(days, day)
	}
	nights := plan.Accommodation.TotalNights
	return &PlanImport{
		PlanID:     plan.PlanID,
		PlanName:   plan.PlanName,
		Theme:      plan.Theme,
		Pace:       string(plan.Pace),
		DailyPlans: &days,
		Accommodation: &AccommodationImport{
			Name:         plan.Accommodation.Name,
			Type:         plan.Accommodation.Type,
			Location:     plan.Accommodation.Location,
			CostPerNight: NewNumber(plan.Accommodation.CostPerNight),
			TotalNights:  &nights,
		},
		Transportation: &TransportationImport{
			Arrival:            plan.Transportation.Arrival,
			Daily:              plan.Transportation.Daily,
			EstimatedDailyCost: NewNumber(plan.Transportation.EstimatedDailyCost),
		},
		KeyHighlights: append([]string{}, plan.KeyHighlights...),
	}
}
