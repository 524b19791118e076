package validation

import (
	"fmt"
	"math"

	"github.com/alexanderramin/itinera/internal/domain"
)

// CheckBudget compares the plan total against the requested budget.
// Without requirements there is nothing to compare against.
func CheckBudget(plan *domain.TravelPlan, req *domain.UserRequirements) []domain.ValidationIssue {
	if req == nil {
		return nil
	}

	budget := req.Budget
	cost := plan.TotalCost

	if budget <= 0 || !isFinite(budget) {
		return []domain.ValidationIssue{{
			Severity:           domain.SeverityCritical,
			Category:           domain.CategoryBudget,
			Problem:            fmt.Sprintf("Budget $%.2f is not usable for validation (must be positive)", budget),
			Suggestion:         "Provide a positive trip budget",
			AffectedActivities: []string{},
		}}
	}

	if !isFinite(cost) {
		return []domain.ValidationIssue{{
			Severity:           domain.SeverityCritical,
			Category:           domain.CategoryBudget,
			Problem:            fmt.Sprintf("Total cost %v is not a finite amount", cost),
			Suggestion:         "Give every activity, night and transport cost a numeric value",
			AffectedActivities: []string{},
		}}
	}

	if cost > budget*(1+BudgetTolerance) {
		over := cost - budget
		pct := over / budget * 100
		return []domain.ValidationIssue{{
			Severity:           domain.SeverityCritical,
			Category:           domain.CategoryBudget,
			Problem:            fmt.Sprintf("Total cost $%.2f exceeds budget $%.2f by $%.2f (%.1f%%)", cost, budget, over, pct),
			Suggestion:         fmt.Sprintf("Reduce accommodation tier, eliminate expensive activities, or increase budget by $%.2f", over),
			AffectedActivities: []string{},
		}}
	}

	if cost < budget*BudgetUnderuseRatio {
		return []domain.ValidationIssue{{
			Severity:           domain.SeverityLow,
			Category:           domain.CategoryBudget,
			Problem:            fmt.Sprintf("Plan only uses %.1f%% of available budget", cost/budget*100),
			Suggestion:         "Consider upgrading accommodation or adding premium experiences",
			AffectedActivities: []string{},
		}}
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
