package validation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/alexanderramin/itinera/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Validator runs an ordered rule list over plans. It holds no mutable state
// and is safe for concurrent use.
type Validator struct {
	rules   []Rule
	workers int
}

type Option func(*Validator)

// WithRules replaces the rule registry.
func WithRules(rules ...Rule) Option {
	return func(v *Validator) {
		v.rules = append([]Rule(nil), rules...)
	}
}

// WithWorkers bounds how many plans ValidatePlans checks at once.
// Values below one fall back to runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(v *Validator) {
		v.workers = n
	}
}

func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		rules:   DefaultRules(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.workers < 1 {
		v.workers = runtime.NumCPU()
	}
	return v
}

// Rules returns a copy of the registered rules.
func (v *Validator) Rules() []Rule {
	return append([]Rule(nil), v.rules...)
}

// ValidatePlan runs every rule against plan in registry order. It fails only
// when the plan has no recognizable shape.
func (v *Validator) ValidatePlan(plan *domain.TravelPlan, req *domain.UserRequirements) (domain.ValidationResult, error) {
	if plan == nil {
		return domain.ValidationResult{}, &domain.MalformedPlanError{Field: "plan", Reason: "plan is nil"}
	}
	if plan.DailyPlans == nil {
		return domain.ValidationResult{}, &domain.MalformedPlanError{
			PlanID: plan.PlanID,
			Field:  "daily_plans",
			Reason: "plan has no daily_plans collection",
		}
	}

	issues := []domain.ValidationIssue{}
	for _, rule := range v.rules {
		issues = append(issues, rule.Check(plan, req)...)
	}

	return domain.ValidationResult{
		PlanID:   plan.PlanID,
		Status:   Classify(issues),
		Issues:   issues,
		Warnings: Warnings(plan),
		Score:    Score(issues),
	}, nil
}

// ValidatePlans validates each plan independently on a bounded worker pool.
// The result slice matches plans index for index. A plan that fails, panics
// or is reached after ctx is done gets a FailureResult.
func (v *Validator) ValidatePlans(ctx context.Context, plans []*domain.TravelPlan, req *domain.UserRequirements) []domain.ValidationResult {
	results := make([]domain.ValidationResult, len(plans))

	var g errgroup.Group
	g.SetLimit(v.workers)

	for i, plan := range plans {
		g.Go(func() error {
			results[i] = v.validateIsolated(ctx, plan, req)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (v *Validator) validateIsolated(ctx context.Context, plan *domain.TravelPlan, req *domain.UserRequirements) (res domain.ValidationResult) {
	planID := ""
	if plan != nil {
		planID = plan.PlanID
	}

	defer func() {
		if r := recover(); r != nil {
			res = FailureResult(planID, fmt.Errorf("validation panicked: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return FailureResult(planID, err)
	}

	res, err := v.ValidatePlan(plan, req)
	if err != nil {
		return FailureResult(planID, err)
	}
	return res
}

// FailureResult is the verdict for a plan that could not be validated.
func FailureResult(planID string, err error) domain.ValidationResult {
	return domain.ValidationResult{
		PlanID: planID,
		Status: domain.StatusNeedsRevision,
		Issues: []domain.ValidationIssue{{
			Severity:           domain.SeverityCritical,
			Category:           domain.CategoryLogistics,
			Problem:            fmt.Sprintf("Plan could not be validated: %v", err),
			Suggestion:         "Regenerate the plan with a complete daily schedule",
			AffectedActivities: []string{},
		}},
		Warnings: []string{},
		Score:    0,
	}
}
