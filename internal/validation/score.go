package validation

import "github.com/alexanderramin/itinera/internal/domain"

// Penalty returns the score deduction for one issue of severity s.
func Penalty(s domain.Severity) float64 {
	switch s {
	case domain.SeverityCritical:
		return PenaltyCritical
	case domain.SeverityHigh:
		return PenaltyHigh
	case domain.SeverityMedium:
		return PenaltyMedium
	case domain.SeverityLow:
		return PenaltyLow
	default:
		return 0
	}
}

// Score deducts per-issue penalties from MaxScore, floored at zero.
func Score(issues []domain.ValidationIssue) float64 {
	score := MaxScore
	for _, issue := range issues {
		score -= Penalty(issue.Severity)
	}
	if score < 0 {
		return 0
	}
	return score
}

// Classify derives the status from issue severities alone.
func Classify(issues []domain.ValidationIssue) domain.ValidationStatus {
	var high bool
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityCritical:
			return domain.StatusNeedsRevision
		case domain.SeverityHigh:
			high = true
		}
	}
	if high {
		return domain.StatusApprovedWithWarnings
	}
	return domain.StatusApproved
}
