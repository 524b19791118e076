package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

// FormatRefinement renders the outcome of one refinement round.
func FormatRefinement(entry domain.RefinementEntry, result domain.ValidationResult, maxIterations int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Bold(fmt.Sprintf("Round %d/%d", entry.Sequence, maxIterations)), Dim(fmt.Sprintf("%q", entry.Feedback)))
	fmt.Fprintf(&b, "Identified %d change requests:\n", len(entry.Changes))
	for _, c := range entry.Changes {
		target := ""
		if c.Target != "" {
			target = Dim(" (" + c.Target + ")")
		}
		fmt.Fprintf(&b, "  - %s: %s%s\n", StyleBlue.Render(string(c.Type)), c.Description, target)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", StatusIndicator(result.Status), RenderScore(result.Score, scoreBarWidth))
	if entry.Plan != nil {
		fmt.Fprintf(&b, "Total cost: %s\n", Money(entry.Plan.TotalCost))
	}
	if len(result.Issues) > 0 || len(result.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatResultDetails(result))
	}
	return b.String()
}

// FormatHistory renders a refinement session and its entries in order.
func FormatHistory(header *domain.RefinementSession, entries []domain.RefinementEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold(header.Destination), Dim("plan "+header.PlanID))
	fmt.Fprintf(&b, "Started %s with %s %s\n\n",
		HumanTimestamp(header.CreatedAt),
		StatusIndicator(header.InitialStatus),
		Dim(fmt.Sprintf("(score %.1f)", header.InitialScore)))

	if len(entries) == 0 {
		b.WriteString(Dim("No refinements yet.") + "\n")
		return RenderBox("Session "+ShortID(header.ID), b.String())
	}

	headers := []string{"#", "FEEDBACK", "CHANGES", "STATUS", "SCORE", "COST"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		cost := Dim("--")
		if e.Plan != nil {
			cost = Money(e.Plan.TotalCost)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Sequence),
			truncate(e.Feedback, 40),
			fmt.Sprintf("%d", len(e.Changes)),
			StatusIndicator(e.Status),
			fmt.Sprintf("%.1f", e.Score),
			cost,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return RenderBox("Session "+ShortID(header.ID), b.String())
}

// FormatSessionList renders refinement sessions, most recently active first.
func FormatSessionList(sessions []*domain.RefinementSession) string {
	if len(sessions) == 0 {
		return Dim("No refinement sessions yet.") + "\n"
	}
	headers := []string{"ID", "DESTINATION", "PLAN", "STARTED", "UPDATED"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.ID,
			s.Destination,
			s.PlanID,
			HumanTimestamp(s.CreatedAt),
			HumanTimestamp(s.UpdatedAt),
		})
	}
	return RenderTable(headers, rows)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
