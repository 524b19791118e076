package validation

import (
	"fmt"
	"testing"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDailyBalance_Hours(t *testing.T) {
	tests := []struct {
		name         string
		hours        []float64
		wantSeverity domain.Severity
		wantProblem  string
	}{
		{name: "overloaded", hours: []float64{5, 5, 3}, wantSeverity: domain.SeverityHigh,
			wantProblem: "Day 1 has 13.0 hours of activities (over 12 hours)"},
		{name: "exactly twelve", hours: []float64{4, 4, 4}},
		{name: "underfilled", hours: []float64{1, 1, 1}, wantSeverity: domain.SeverityLow,
			wantProblem: "Day 1 only has 3.0 hours of activities"},
		{name: "exactly four", hours: []float64{2, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acts := make([]domain.Activity, len(tt.hours))
			for i, h := range tt.hours {
				acts[i] = testutil.NewTestActivity(fmt.Sprintf("A%d", i), "09:00", h)
			}
			issues := CheckDailyBalance(planWithDay(acts...), nil)
			if tt.wantSeverity == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, tt.wantSeverity, issues[0].Severity)
			assert.Equal(t, domain.CategoryLogistics, issues[0].Category)
			assert.Equal(t, tt.wantProblem, issues[0].Problem)
		})
	}
}

func TestCheckDailyBalance_TooManyDiningStops(t *testing.T) {
	var acts []domain.Activity
	for i := 0; i < 5; i++ {
		acts = append(acts, testutil.NewTestActivity(fmt.Sprintf("Meal %d", i), "09:00", 1, testutil.WithCategory(domain.CategoryDining)))
	}
	acts = append(acts, testutil.NewTestActivity("Tower", "09:00", 1))

	issues := CheckDailyBalance(planWithDay(acts...), nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "Day 1 has too many dining activities", issues[0].Problem)
	assert.Equal(t, []string{"Meal 0", "Meal 1", "Meal 2", "Meal 3", "Meal 4"}, issues[0].AffectedActivities)
}
