package testutil

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Activity options
type ActivityOption func(*domain.Activity)

func WithCost(c float64) ActivityOption {
	return func(a *domain.Activity) {
		a.EstimatedCost = c
	}
}

func WithCategory(c string) ActivityOption {
	return func(a *domain.Activity) {
		a.Category = c
	}
}

func WithSource(s string) ActivityOption {
	return func(a *domain.Activity) {
		a.Source = s
	}
}

func WithDefects(defects ...string) ActivityOption {
	return func(a *domain.Activity) {
		a.Defects = append(a.Defects, defects...)
	}
}

// NewTestActivity builds a sourced sightseeing activity costing $25.
func NewTestActivity(name, clock string, hours float64, opts ...ActivityOption) domain.Activity {
	a := domain.Activity{
		Time:          clock,
		Name:          name,
		Location:      "Old Town",
		Description:   name + " visit",
		EstimatedCost: 25,
		DurationHours: hours,
		Category:      "sightseeing",
		Source:        "https://example.com/" + name,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// NewTestDay builds a day from activities and recomputes its total cost.
// Without activities it gets four well spaced ones (7 hours, $100).
func NewTestDay(number int, acts ...domain.Activity) domain.DayPlan {
	if acts == nil {
		acts = []domain.Activity{
			NewTestActivity(fmt.Sprintf("Walk %d", number), "09:00", 2),
			NewTestActivity(fmt.Sprintf("Lunch %d", number), "12:00", 1.5, WithCategory(domain.CategoryDining)),
			NewTestActivity(fmt.Sprintf("Gallery %d", number), "14:30", 2),
			NewTestActivity(fmt.Sprintf("Dinner %d", number), "18:00", 1.5, WithCategory(domain.CategoryDining)),
		}
	}
	d := domain.DayPlan{
		DayNumber:  number,
		Date:       fmt.Sprintf("2026-05-%02d", number),
		Theme:      "Exploration",
		Activities: acts,
	}
	d.TotalCost = d.ActivityCost()
	return d
}

// Plan options
type PlanOption func(*domain.TravelPlan)

func WithPlanID(id string) PlanOption {
	return func(p *domain.TravelPlan) {
		p.PlanID = id
	}
}

func WithTotalCost(c float64) PlanOption {
	return func(p *domain.TravelPlan) {
		p.TotalCost = c
	}
}

// WithDays replaces the daily plans. Called with no days it leaves an empty,
// non-nil schedule.
func WithDays(days ...domain.DayPlan) PlanOption {
	return func(p *domain.TravelPlan) {
		p.DailyPlans = append([]domain.DayPlan{}, days...)
	}
}

func WithoutDailyPlans() PlanOption {
	return func(p *domain.TravelPlan) {
		p.DailyPlans = nil
	}
}

func WithAccommodationName(name string) PlanOption {
	return func(p *domain.TravelPlan) {
		p.Accommodation.Name = name
	}
}

func WithDailyTransport(daily string) PlanOption {
	return func(p *domain.TravelPlan) {
		p.Transportation.Daily = daily
	}
}

// NewTestPlan builds a three day plan that passes every rule against
// NewTestRequirements (total $900 on a $1000 budget).
func NewTestPlan(opts ...PlanOption) *domain.TravelPlan {
	p := &domain.TravelPlan{
		PlanID:   domain.PlanA,
		PlanName: "Balanced Explorer",
		Theme:    "culture",
		Pace:     domain.PaceModerate,
		CostBreakdown: map[string]float64{
			domain.CostActivities:     300,
			domain.CostAccommodation:  450,
			domain.CostTransportation: 150,
		},
		TotalCost:  900,
		DailyPlans: []domain.DayPlan{NewTestDay(1), NewTestDay(2), NewTestDay(3)},
		Accommodation: domain.Accommodation{
			Name:         "Riverside Inn",
			Type:         "hotel",
			Location:     "Centre",
			CostPerNight: 150,
			TotalNights:  3,
		},
		Transportation: domain.Transportation{
			Arrival:            "Train from the airport",
			Daily:              "Metro day pass",
			EstimatedDailyCost: 50,
		},
		KeyHighlights: []string{"Walk 1", "Gallery 2"},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewTestRequirements returns valid requirements for a three day trip.
func NewTestRequirements(budget float64) *domain.UserRequirements {
	return &domain.UserRequirements{
		Destination:  "Lisbon",
		StartDate:    "2026-05-01",
		DurationDays: 3,
		Budget:       budget,
		Travelers:    2,
	}
}
