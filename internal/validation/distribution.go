package validation

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/domain"
)

// CheckCostDistribution flags days whose cost sits well above the plan's
// average day.
func CheckCostDistribution(plan *domain.TravelPlan, _ *domain.UserRequirements) []domain.ValidationIssue {
	if len(plan.DailyPlans) == 0 {
		return nil
	}

	var sum float64
	for _, day := range plan.DailyPlans {
		sum += day.TotalCost
	}
	avg := sum / float64(len(plan.DailyPlans))

	var issues []domain.ValidationIssue
	for _, day := range plan.DailyPlans {
		if day.TotalCost <= avg*(1+MaxDailyCostVariance) {
			continue
		}
		issues = append(issues, domain.ValidationIssue{
			Severity:           domain.SeverityLow,
			Category:           domain.CategoryBudget,
			DayNumber:          domain.IntPtr(day.DayNumber),
			Problem:            fmt.Sprintf("Day %d cost $%.2f is $%.2f above average", day.DayNumber, day.TotalCost, day.TotalCost-avg),
			Suggestion:         "Consider redistributing expensive activities across multiple days",
			AffectedActivities: []string{},
		})
	}
	return issues
}
