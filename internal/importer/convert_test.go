package importer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_RecomputesTotals(t *testing.T) {
	plan := Convert(validPlanImport())

	require.Len(t, plan.DailyPlans, 2)
	assert.Equal(t, 40.0, plan.DailyPlans[0].TotalCost)
	assert.Equal(t, 20.0, plan.DailyPlans[1].TotalCost)

	assert.Equal(t, map[string]float64{
		domain.CostActivities:     60,
		domain.CostAccommodation:  200,
		domain.CostTransportation: 20,
	}, plan.CostBreakdown)
	assert.Equal(t, 280.0, plan.TotalCost)
}

func TestConvert_SortsDaysAndDefaultsPace(t *testing.T) {
	p := validPlanImport()
	days := *p.DailyPlans
	days[0], days[1] = days[1], days[0]
	p.Pace = ""

	plan := Convert(p)
	assert.Equal(t, 1, plan.DailyPlans[0].DayNumber)
	assert.Equal(t, 2, plan.DailyPlans[1].DayNumber)
	assert.Equal(t, domain.PaceModerate, plan.Pace)
}

func TestConvert_RecordsActivityDefects(t *testing.T) {
	p := validPlanImport()
	(*p.DailyPlans)[0].Activities[1].EstimatedCost = Number{Raw: "ask at the door", Set: true}

	plan := Convert(p)
	bad := plan.DailyPlans[0].Activities[1]
	assert.True(t, bad.Malformed())
	assert.Equal(t, []string{`estimated_cost "ask at the door" is not a number`}, bad.Defects)
	assert.Equal(t, 0.0, bad.EstimatedCost)
	assert.False(t, plan.DailyPlans[0].Activities[0].Malformed())
}

func TestImportPlans_NonFiniteAmountsAreDefects(t *testing.T) {
	f, err := ParsePlanFile([]byte(`{
		"destination": "Lisbon",
		"plans": [{
			"plan_id": "A",
			"daily_plans": [{"day_number": 1, "activities": [
				{"time": "09:00", "name": "Tram ride", "estimated_cost": "NaN", "duration_hours": 1},
				{"time": "11:00", "name": "Yacht", "estimated_cost": 5000, "duration_hours": "Infinity"},
				{"time": "14:00", "name": "Lunch", "estimated_cost": 10, "duration_hours": 1}
			]}]
		}]
	}`))
	require.NoError(t, err)

	imported := ImportPlans(f)
	require.Len(t, imported, 1)
	require.NoError(t, imported[0].Err)
	plan := imported[0].Plan

	acts := plan.DailyPlans[0].Activities
	assert.Equal(t, []string{`estimated_cost "NaN" is not a number`}, acts[0].Defects)
	assert.Equal(t, 0.0, acts[0].EstimatedCost)
	assert.Equal(t, []string{`duration_hours "Infinity" is not a number`}, acts[1].Defects)
	assert.Equal(t, 0.0, acts[1].DurationHours)
	assert.Empty(t, acts[2].Defects)

	assert.Equal(t, 5010.0, plan.TotalCost)
}

func TestImportPlans_FromFile(t *testing.T) {
	f, err := LoadPlanFile(filepath.Join("testdata", "plans_lisbon.json"))
	require.NoError(t, err)
	assert.Empty(t, ValidatePlanFile(f))

	req, err := ConvertRequirements(f.Requirements, f.Destination)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, req.Budget)
	assert.Equal(t, 2, req.DurationDays)
	assert.Equal(t, "moderate", req.Preferences["pace"])

	imported := ImportPlans(f)
	require.Len(t, imported, 2)

	a := imported[0]
	require.NoError(t, a.Err)
	assert.Equal(t, "A", a.PlanID)
	// 15 + 25.50 + 10 on day one, 12 + 8 + 0 on day two.
	assert.InDelta(t, 50.5, a.Plan.DailyPlans[0].TotalCost, 1e-9)
	assert.InDelta(t, 20.0, a.Plan.DailyPlans[1].TotalCost, 1e-9)
	assert.InDelta(t, 70.5+240+20, a.Plan.TotalCost, 1e-9, "generator total_cost is ignored")
	assert.Equal(t, "dining", a.Plan.DailyPlans[0].Activities[1].Category)

	river := a.Plan.DailyPlans[1].Activities[2]
	assert.Equal(t, []string{`estimated_cost "free" is not a number`}, river.Defects)

	b := imported[1]
	assert.Nil(t, b.Plan)
	var mpe *domain.MalformedPlanError
	require.True(t, errors.As(b.Err, &mpe))
	assert.Equal(t, "B", mpe.PlanID)
	assert.Equal(t, "daily_plans", mpe.Field)
}

func TestParsePlanFile_InvalidJSON(t *testing.T) {
	_, err := ParsePlanFile([]byte(`{"plans": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing plan file")
}

func TestConvertRequirements(t *testing.T) {
	req, err := ConvertRequirements(&RequirementsImport{Budget: NewNumber(800), DurationDays: ptrInt(3)}, "Porto")
	require.NoError(t, err)
	assert.Equal(t, "Porto", req.Destination)
	assert.Equal(t, 1, req.Travelers)

	_, err = ConvertRequirements(&RequirementsImport{DurationDays: ptrInt(3)}, "Porto")
	assert.ErrorContains(t, err, "budget is required")

	_, err = ConvertRequirements(&RequirementsImport{Budget: Number{Raw: "lots", Set: true}, DurationDays: ptrInt(3)}, "")
	assert.ErrorContains(t, err, `budget "lots" is not a number`)

	_, err = ConvertRequirements(&RequirementsImport{Budget: NewNumber(800), DurationDays: ptrInt(3), Travelers: ptrInt(0)}, "Porto")
	assert.ErrorContains(t, err, "travelers must be positive")
}

func TestFromPlan_RoundTrip(t *testing.T) {
	orig := Convert(validPlanImport())
	again := Convert(FromPlan(orig))
	assert.Equal(t, orig, again)
}
