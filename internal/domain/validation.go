package domain

import "time"

// ValidationIssue is one defect found by a rule check. A nil DayNumber means
// the issue applies to the whole plan.
type ValidationIssue struct {
	Severity           Severity      `json:"severity"`
	Category           IssueCategory `json:"category"`
	DayNumber          *int          `json:"day_number"`
	Problem            string        `json:"problem"`
	Suggestion         string        `json:"suggestion"`
	AffectedActivities []string      `json:"affected_activities"`
}

type ValidationResult struct {
	PlanID   string            `json:"plan_id"`
	Status   ValidationStatus  `json:"status"`
	Issues   []ValidationIssue `json:"issues"`
	Warnings []string          `json:"warnings"`
	Score    float64           `json:"score"`
}

// CountBySeverity tallies issues per severity.
func (r ValidationResult) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, issue := range r.Issues {
		counts[issue.Severity]++
	}
	return counts
}

// ValidationRun is a persisted snapshot of one validation pass over a set
// of plans.
type ValidationRun struct {
	ID          string             `json:"id"`
	Destination string             `json:"destination"`
	Source      string             `json:"source,omitempty"`
	ValidatedAt time.Time          `json:"validated_at"`
	Results     []ValidationResult `json:"results"`
}

// Result returns the result for planID, if present.
func (r *ValidationRun) Result(planID string) (ValidationResult, bool) {
	for _, res := range r.Results {
		if res.PlanID == planID {
			return res, true
		}
	}
	return ValidationResult{}, false
}

// Best returns the highest-scoring result. Ties keep input order.
func (r *ValidationRun) Best() (ValidationResult, bool) {
	if len(r.Results) == 0 {
		return ValidationResult{}, false
	}
	best := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.Score > best.Score {
			best = res
		}
	}
	return best, true
}
