package domain

// Activity is one scheduled unit of a day. Time is kept as the raw "HH:MM"
// string handed over by the generator; parsing happens in the timing check.
type Activity struct {
	Time          string  `json:"time"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Description   string  `json:"description"`
	EstimatedCost float64 `json:"estimated_cost"`
	DurationHours float64 `json:"duration_hours"`
	Category      string  `json:"category"`
	Source        string  `json:"source"`

	// Defects lists shape problems recorded at the import boundary.
	Defects []string `json:"defects,omitempty"`
}

// Malformed reports whether the importer recorded any defects for a.
func (a Activity) Malformed() bool {
	return len(a.Defects) > 0
}

type DayPlan struct {
	DayNumber  int        `json:"day_number"`
	Date       string     `json:"date"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
	TotalCost  float64    `json:"total_cost"`
	Notes      string     `json:"notes"`
}

// ActivityNames returns the names of the day's activities in schedule order.
func (d DayPlan) ActivityNames() []string {
	names := make([]string, 0, len(d.Activities))
	for _, a := range d.Activities {
		names = append(names, a.Name)
	}
	return names
}

// TotalHours sums the scheduled duration of every activity in the day.
func (d DayPlan) TotalHours() float64 {
	var total float64
	for _, a := range d.Activities {
		total += a.DurationHours
	}
	return total
}

// ActivityCost recomputes the day's cost from its activities.
func (d DayPlan) ActivityCost() float64 {
	var total float64
	for _, a := range d.Activities {
		total += a.EstimatedCost
	}
	return total
}

type Accommodation struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Location     string  `json:"location"`
	CostPerNight float64 `json:"cost_per_night"`
	TotalNights  int     `json:"total_nights"`
}

// TotalCost is the accommodation cost for the whole stay.
func (a Accommodation) TotalCost() float64 {
	return a.CostPerNight * float64(a.TotalNights)
}

type Transportation struct {
	Arrival            string  `json:"arrival"`
	Daily              string  `json:"daily"`
	EstimatedDailyCost float64 `json:"estimated_daily_cost"`
}

// TravelPlan is one complete proposed itinerary.
//
// A nil DailyPlans means the generator produced no daily schedule at all,
// which the validator rejects; an empty, non-nil slice is a plan with zero days.
type TravelPlan struct {
	PlanID         string             `json:"plan_id"`
	PlanName       string             `json:"plan_name"`
	Theme          string             `json:"theme"`
	Pace           Pace               `json:"pace"`
	TotalCost      float64            `json:"total_cost"`
	CostBreakdown  map[string]float64 `json:"cost_breakdown"`
	DailyPlans     []DayPlan          `json:"daily_plans"`
	Accommodation  Accommodation      `json:"accommodation"`
	Transportation Transportation     `json:"transportation"`
	KeyHighlights  []string           `json:"key_highlights"`
}

// ActivityCount returns the number of activities across all days.
func (p *TravelPlan) ActivityCount() int {
	var n int
	for _, d := range p.DailyPlans {
		n += len(d.Activities)
	}
	return n
}

// SourcedActivityCount returns how many activities carry a source attribution.
func (p *TravelPlan) SourcedActivityCount() int {
	var n int
	for _, d := range p.DailyPlans {
		for _, a := range d.Activities {
			if a.Source != "" {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy of p so callers can derive a new plan without
// touching the original.
func (p *TravelPlan) Clone() *TravelPlan {
	if p == nil {
		return nil
	}
	c := *p
	if p.CostBreakdown != nil {
		c.CostBreakdown = make(map[string]float64, len(p.CostBreakdown))
		for k, v := range p.CostBreakdown {
			c.CostBreakdown[k] = v
		}
	}
	if p.DailyPlans != nil {
		c.DailyPlans = make([]DayPlan, len(p.DailyPlans))
		for i, d := range p.DailyPlans {
			d.Activities = append([]Activity(nil), d.Activities...)
			for j := range d.Activities {
				d.Activities[j].Defects = append([]string(nil), d.Activities[j].Defects...)
			}
			c.DailyPlans[i] = d
		}
	}
	c.KeyHighlights = append([]string(nil), p.KeyHighlights...)
	return &c
}
