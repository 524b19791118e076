package validation

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

// CheckFeasibility inspects each activity on its own. A malformed activity
// yields one critical issue and nothing else.
func CheckFeasibility(plan *domain.TravelPlan, _ *domain.UserRequirements) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	for _, day := range plan.DailyPlans {
		for _, a := range day.Activities {
			if a.Malformed() {
				issues = append(issues, domain.ValidationIssue{
					Severity:           domain.SeverityCritical,
					Category:           domain.CategoryLogistics,
					DayNumber:          domain.IntPtr(day.DayNumber),
					Problem:            fmt.Sprintf("Activity '%s' is malformed: %s", activityLabel(a), strings.Join(a.Defects, "; ")),
					Suggestion:         "Regenerate or correct this activity entry",
					AffectedActivities: []string{activityLabel(a)},
				})
				continue
			}

			if a.EstimatedCost < 0 {
				issues = append(issues, domain.ValidationIssue{
					Severity:           domain.SeverityCritical,
					Category:           domain.CategoryBudget,
					DayNumber:          domain.IntPtr(day.DayNumber),
					Problem:            fmt.Sprintf("Activity '%s' has negative cost $%.2f", a.Name, a.EstimatedCost),
					Suggestion:         "Correct the cost estimate",
					AffectedActivities: []string{a.Name},
				})
			}

			if a.EstimatedCost == 0 && strings.Contains(strings.ToLower(a.Name), "museum") {
				issues = append(issues, domain.ValidationIssue{
					Severity:           domain.SeverityMedium,
					Category:           domain.CategoryBudget,
					DayNumber:          domain.IntPtr(day.DayNumber),
					Problem:            fmt.Sprintf("Activity '%s' listed as free but may require admission", a.Name),
					Suggestion:         "Verify if entrance fee is required",
					AffectedActivities: []string{a.Name},
				})
			}
		}
	}

	return issues
}

func activityLabel(a domain.Activity) string {
	if a.Name == "" {
		return "(unnamed)"
	}
	return a.Name
}
