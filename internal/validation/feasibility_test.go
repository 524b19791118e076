package validation

import (
	"testing"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFeasibility(t *testing.T) {
	tests := []struct {
		name         string
		activity     domain.Activity
		wantSeverity domain.Severity
		wantCategory domain.IssueCategory
		wantProblem  string
	}{
		{
			name:         "negative cost",
			activity:     testutil.NewTestActivity("Boat", "09:00", 1, testutil.WithCost(-5)),
			wantSeverity: domain.SeverityCritical,
			wantCategory: domain.CategoryBudget,
			wantProblem:  "Activity 'Boat' has negative cost $-5.00",
		},
		{
			name:         "free museum",
			activity:     testutil.NewTestActivity("National MUSEUM of Art", "09:00", 1, testutil.WithCost(0)),
			wantSeverity: domain.SeverityMedium,
			wantCategory: domain.CategoryBudget,
			wantProblem:  "Activity 'National MUSEUM of Art' listed as free but may require admission",
		},
		{
			name:     "free park",
			activity: testutil.NewTestActivity("City Park", "09:00", 1, testutil.WithCost(0)),
		},
		{
			name:     "paid museum",
			activity: testutil.NewTestActivity("Museum", "09:00", 1, testutil.WithCost(12)),
		},
		{
			name:         "malformed",
			activity:     testutil.NewTestActivity("Tram", "09:00", 1, testutil.WithCost(-3), testutil.WithDefects("estimated_cost is not a number")),
			wantSeverity: domain.SeverityCritical,
			wantCategory: domain.CategoryLogistics,
			wantProblem:  "Activity 'Tram' is malformed: estimated_cost is not a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckFeasibility(planWithDay(tt.activity), nil)
			if tt.wantSeverity == "" {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, tt.wantSeverity, issues[0].Severity)
			assert.Equal(t, tt.wantCategory, issues[0].Category)
			assert.Equal(t, tt.wantProblem, issues[0].Problem)
		})
	}
}
