package validation

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Warnings returns advisory notes for a plan. They never affect score or status.
func Warnings(plan *domain.TravelPlan) []string {
	warnings := []string{}

	if strings.TrimSpace(plan.Accommodation.Name) == "" {
		warnings = append(warnings, "No specific accommodation recommended - user should research options")
	}
	if strings.TrimSpace(plan.Transportation.Daily) == "" {
		warnings = append(warnings, "Transportation details are minimal - add more specific guidance")
	}

	total := plan.ActivityCount()
	sourced := plan.SourcedActivityCount()
	if float64(sourced) < float64(total)*MinSourcedRatio {
		warnings = append(warnings, fmt.Sprintf("Only %d/%d activities have source attribution", sourced, total))
	}

	return warnings
}
