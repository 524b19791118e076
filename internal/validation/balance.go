package validation

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/domain"
)

// CheckDailyBalance flags overloaded and underfilled days and days with too
// many dining stops.
func CheckDailyBalance(plan *domain.TravelPlan, _ *domain.UserRequirements) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	for _, day := range plan.DailyPlans {
		hours := day.TotalHours()

		switch {
		case hours > MaxDailyHours:
			issues = append(issues, domain.ValidationIssue{
				Severity:           domain.SeverityHigh,
				Category:           domain.CategoryLogistics,
				DayNumber:          domain.IntPtr(day.DayNumber),
				Problem:            fmt.Sprintf("Day %d has %.1f hours of activities (over %.0f hours)", day.DayNumber, hours, MaxDailyHours),
				Suggestion:         "Reduce number of activities or shorten durations to avoid exhaustion",
				AffectedActivities: day.ActivityNames(),
			})
		case hours < MinDailyHours:
			issues = append(issues, domain.ValidationIssue{
				Severity:           domain.SeverityLow,
				Category:           domain.CategoryLogistics,
				DayNumber:          domain.IntPtr(day.DayNumber),
				Problem:            fmt.Sprintf("Day %d only has %.1f hours of activities", day.DayNumber, hours),
				Suggestion:         "Add more activities to make better use of the day",
				AffectedActivities: day.ActivityNames(),
			})
		}

		var dining []string
		for _, a := range day.Activities {
			if a.Category == domain.CategoryDining {
				dining = append(dining, a.Name)
			}
		}
		if len(dining) > MaxDiningActivities {
			issues = append(issues, domain.ValidationIssue{
				Severity:           domain.SeverityLow,
				Category:           domain.CategoryLogistics,
				DayNumber:          domain.IntPtr(day.DayNumber),
				Problem:            fmt.Sprintf("Day %d has too many dining activities", day.DayNumber),
				Suggestion:         "Balance with more sightseeing or cultural activities",
				AffectedActivities: dining,
			})
		}
	}

	return issues
}
