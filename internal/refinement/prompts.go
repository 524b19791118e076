package refinement

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

const parseFeedbackSystemPrompt = `You are an expert at understanding travel plan modification requests.
Parse the traveller's feedback into specific, actionable change requests.

Change types:
- "add": add a new activity or experience
- "remove": remove an existing activity
- "replace": replace one activity with another
- "modify": adjust timing, cost or details of an existing activity
- "rebalance": adjust pace, redistribute time or budget

You must output ONLY a JSON object of this shape:
{
  "changes": [
    {
      "type": "add|remove|replace|modify|rebalance",
      "description": "brief description of the change",
      "target": "activity name, day number, or 'overall'",
      "details": {"key": "value"}
    }
  ]
}

RULES:
1. Every detail value is a string
2. Use only the five change types above
3. Output ONLY the JSON object, no markdown, no explanation`

const revisePlanSystemPrompt = `You are an expert travel planner modifying an itinerary based on traveller feedback.

Apply the requested changes while:
1. Keeping the total cost within 5% of the budget
2. Keeping daily schedules logical and balanced
3. Leaving at least 30 minutes between activities
4. Preserving the overall travel style and pace
5. Citing a source for every new activity

Return the complete modified plan as ONE JSON object matching the schema below.
Times are 24-hour "HH:MM" strings. Costs and durations are plain JSON numbers.
Output ONLY the JSON object, no markdown, no explanation.

Schema:
%s`

// planSummary renders a compact view of plan for the feedback parser.
func planSummary(plan *domain.TravelPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan: %s\n", plan.PlanName)
	fmt.Fprintf(&b, "Theme: %s | Pace: %s\n", plan.Theme, plan.Pace)
	fmt.Fprintf(&b, "Total Cost: $%.2f\n", plan.TotalCost)
	fmt.Fprintf(&b, "Duration: %d days\n", len(plan.DailyPlans))
	b.WriteString("\nDaily breakdown:\n")
	for _, day := range plan.DailyPlans {
		fmt.Fprintf(&b, "\nDay %d - %s:\n", day.DayNumber, day.Theme)
		for _, a := range day.Activities {
			fmt.Fprintf(&b, "  %s - %s at %s ($%.2f, %gh)\n", a.Time, a.Name, a.Location, a.EstimatedCost, a.DurationHours)
		}
	}
	return b.String()
}

func buildParseFeedbackPrompt(plan *domain.TravelPlan, feedback string) string {
	return fmt.Sprintf("Current plan summary:\n%s\nTraveller feedback: %q\n\nParse this feedback into structured change requests.",
		planSummary(plan), feedback)
}

func buildRevisePrompt(planJSON []byte, changes []domain.ChangeRequest, req *domain.UserRequirements) string {
	var b strings.Builder
	b.WriteString("Original plan:\n")
	b.Write(planJSON)
	b.WriteString("\n\nChanges requested:\n")
	for i, c := range changes {
		fmt.Fprintf(&b, "%d. %s: %s", i+1, c.Type, c.Description)
		if c.Target != "" {
			fmt.Fprintf(&b, " (target: %s)", c.Target)
		}
		b.WriteByte('\n')
	}
	if req != nil {
		fmt.Fprintf(&b, "\nBudget constraint: $%.2f\n", req.Budget)
		fmt.Fprintf(&b, "Duration: %d days\n", req.DurationDays)
	}
	b.WriteString("\nApply these changes and return the complete modified plan as JSON.")
	return b.String()
}
