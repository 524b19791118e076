package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
)

const clockLayout = "15:04"

// UnparsableTimeError reports an activity time that is not an HH:MM clock.
type UnparsableTimeError struct {
	Value string
	Err   error
}

func (e *UnparsableTimeError) Error() string {
	return fmt.Sprintf("unparsable time %q: %v", e.Value, e.Err)
}

func (e *UnparsableTimeError) Unwrap() error { return e.Err }

// ParseClock parses an "HH:MM" wall-clock string and returns the offset
// from midnight in hours.
func ParseClock(value string) (float64, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, &UnparsableTimeError{Value: value, Err: err}
	}
	return float64(t.Hour()) + float64(t.Minute())/60, nil
}

// CheckTiming inspects activity counts, gaps between consecutive activities
// and single-activity durations for every day.
func CheckTiming(plan *domain.TravelPlan, _ *domain.UserRequirements) []domain.ValidationIssue {
	var issues []domain.ValidationIssue

	for _, day := range plan.DailyPlans {
		acts := day.Activities
		dayNum := domain.IntPtr(day.DayNumber)

		switch {
		case len(acts) > MaxDailyActivities:
			issues = append(issues, domain.ValidationIssue{
				Severity:           domain.SeverityHigh,
				Category:           domain.CategoryTiming,
				DayNumber:          dayNum,
				Problem:            fmt.Sprintf("Day %d has %d activities (max recommended: %d)", day.DayNumber, len(acts), MaxDailyActivities),
				Suggestion:         "Remove or combine some activities to avoid exhaustion",
				AffectedActivities: day.ActivityNames(),
			})
		case len(acts) < MinDailyActivities:
			issues = append(issues, domain.ValidationIssue{
				Severity:           domain.SeverityLow,
				Category:           domain.CategoryTiming,
				DayNumber:          dayNum,
				Problem:            fmt.Sprintf("Day %d only has %d activities", day.DayNumber, len(acts)),
				Suggestion:         "Consider adding more experiences to make the most of your day",
				AffectedActivities: day.ActivityNames(),
			})
		}

		for i := 0; i+1 < len(acts); i++ {
			if issue, ok := checkGap(day.DayNumber, acts[i], acts[i+1]); ok {
				issues = append(issues, issue)
			}
		}

		for _, a := range acts {
			if a.Malformed() || a.DurationHours <= MaxActivityDuration {
				continue
			}
			issues = append(issues, domain.ValidationIssue{
				Severity:           domain.SeverityMedium,
				Category:           domain.CategoryTiming,
				DayNumber:          domain.IntPtr(day.DayNumber),
				Problem:            fmt.Sprintf("Activity '%s' is scheduled for %g hours", a.Name, a.DurationHours),
				Suggestion:         "Consider splitting into multiple shorter activities or reducing duration",
				AffectedActivities: []string{a.Name},
			})
		}
	}

	return issues
}

// checkGap evaluates one consecutive pair. Overlap and short buffer are
// mutually exclusive; overlap wins.
func checkGap(dayNumber int, cur, next domain.Activity) (domain.ValidationIssue, bool) {
	if cur.Malformed() || next.Malformed() {
		return domain.ValidationIssue{}, false
	}

	pair := []string{cur.Name, next.Name}

	start, err := ParseClock(cur.Time)
	if err == nil {
		var nextStart float64
		nextStart, err = ParseClock(next.Time)
		if err == nil {
			buffer := nextStart - (start + cur.DurationHours)
			switch {
			case buffer < 0:
				return domain.ValidationIssue{
					Severity:           domain.SeverityCritical,
					Category:           domain.CategoryTiming,
					DayNumber:          domain.IntPtr(dayNumber),
					Problem:            fmt.Sprintf("Activities overlap: '%s' ends after '%s' starts", cur.Name, next.Name),
					Suggestion:         "Reschedule one of these activities",
					AffectedActivities: pair,
				}, true
			case buffer < MinTimeBetweenActivities:
				return domain.ValidationIssue{
					Severity:           domain.SeverityHigh,
					Category:           domain.CategoryTiming,
					DayNumber:          domain.IntPtr(dayNumber),
					Problem:            fmt.Sprintf("Only %.0f minutes between '%s' and '%s'", buffer*60, cur.Name, next.Name),
					Suggestion:         "Add at least 30 minutes buffer for travel/breaks",
					AffectedActivities: pair,
				}, true
			}
			return domain.ValidationIssue{}, false
		}
	}

	return domain.ValidationIssue{
		Severity:           domain.SeverityMedium,
		Category:           domain.CategoryTiming,
		DayNumber:          domain.IntPtr(dayNumber),
		Problem:            fmt.Sprintf("Cannot check gap between '%s' and '%s': %v", cur.Name, next.Name, err),
		Suggestion:         "Use 24-hour HH:MM start times for every activity",
		AffectedActivities: pair,
	}, true
}
