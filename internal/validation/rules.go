package validation

import "github.com/alexanderramin/itinera/internal/domain"

// Check inspects one concern of a plan. req may be nil. Checks must not
// mutate the plan.
type Check func(plan *domain.TravelPlan, req *domain.UserRequirements) []domain.ValidationIssue

// Rule is a named, registered check.
type Rule struct {
	Name  string
	Check Check
}

const (
	RuleBudget           = "budget"
	RuleTiming           = "timing"
	RuleDailyBalance     = "daily_balance"
	RuleFeasibility      = "feasibility"
	RuleCostDistribution = "cost_distribution"
)

// DefaultRules returns the built-in checks in canonical execution order.
// Issue order in a ValidationResult follows this order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleBudget, Check: CheckBudget},
		{Name: RuleTiming, Check: CheckTiming},
		{Name: RuleDailyBalance, Check: CheckDailyBalance},
		{Name: RuleFeasibility, Check: CheckFeasibility},
		{Name: RuleCostDistribution, Check: CheckCostDistribution},
	}
}

// WithoutRule returns rules minus the rule called name, preserving order.
func WithoutRule(rules []Rule, name string) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Name != name {
			out = append(out, r)
		}
	}
	return out
}

// RuleNames lists the names of rules in order.
func RuleNames(rules []Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
