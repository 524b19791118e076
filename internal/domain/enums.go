package domain

type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceModerate Pace = "moderate"
	PacePacked   Pace = "packed"
)

// ValidPaces is the canonical set of accepted pace strings.
var ValidPaces = map[string]bool{
	"relaxed": true, "moderate": true, "packed": true,
}

// Plan labels handed out by the generator. Other labels are accepted as-is.
const (
	PlanA = "A"
	PlanB = "B"
	PlanC = "C"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank orders severities so that critical > high > medium > low.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

type IssueCategory string

const (
	CategoryBudget       IssueCategory = "budget"
	CategoryTiming       IssueCategory = "timing"
	CategoryLogistics    IssueCategory = "logistics"
	CategoryAvailability IssueCategory = "availability"
)

type ValidationStatus string

const (
	StatusApproved             ValidationStatus = "APPROVED"
	StatusApprovedWithWarnings ValidationStatus = "APPROVED_WITH_WARNINGS"
	StatusNeedsRevision        ValidationStatus = "NEEDS_REVISION"
)

type ChangeType string

const (
	ChangeAdd       ChangeType = "add"
	ChangeRemove    ChangeType = "remove"
	ChangeReplace   ChangeType = "replace"
	ChangeModify    ChangeType = "modify"
	ChangeRebalance ChangeType = "rebalance"
)

// ValidChangeTypes is the canonical set of accepted change request types.
var ValidChangeTypes = map[string]bool{
	"add": true, "remove": true, "replace": true, "modify": true, "rebalance": true,
}

// Cost breakdown keys.
const (
	CostActivities     = "activities"
	CostAccommodation  = "accommodation"
	CostTransportation = "transportation"
)

// CategoryDining is the activity category counted by the daily balance check.
const CategoryDining = "dining"
