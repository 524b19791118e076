package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

const scoreBarWidth = 10

// FormatValidationRun renders every plan result of a run followed by a
// recommendation line naming the best plan.
func FormatValidationRun(run *domain.ValidationRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold(run.Destination), Dim(run.ValidatedAt.Local().Format("2006-01-02 15:04")))
	if run.Source != "" {
		b.WriteString(Dim("source: "+run.Source) + "\n")
	}
	b.WriteString("\n")

	headers := []string{"PLAN", "STATUS", "SCORE", "ISSUES", "WARNINGS"}
	rows := make([][]string, 0, len(run.Results))
	for _, res := range run.Results {
		rows = append(rows, []string{
			Bold(res.PlanID),
			StatusIndicator(res.Status),
			RenderScore(res.Score, scoreBarWidth),
			issueCounts(res),
			fmt.Sprintf("%d", len(res.Warnings)),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	for _, res := range run.Results {
		if len(res.Issues) == 0 && len(res.Warnings) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(FormatResultDetails(res))
	}

	if best, ok := run.Best(); ok {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Recommended: %s %s\n", Bold("Plan "+best.PlanID), Dim(fmt.Sprintf("(score %.1f)", best.Score)))
	}

	id := ""
	if run.ID != "" {
		id = " " + ShortID(run.ID)
	}
	return RenderBox("Validation"+id, b.String())
}

// FormatResultDetails lists the issues and warnings of one result.
func FormatResultDetails(res domain.ValidationResult) string {
	var b strings.Builder
	b.WriteString(Header("Plan "+res.PlanID) + "\n")
	for _, issue := range res.Issues {
		day := ""
		if issue.DayNumber != nil {
			day = Dim(fmt.Sprintf("day %d ", *issue.DayNumber))
		}
		fmt.Fprintf(&b, "%s %s%s %s\n", SeverityTag(issue.Severity), day, Dim(string(issue.Category)+":"), issue.Problem)
		if issue.Suggestion != "" {
			b.WriteString("    " + Dim("→ "+issue.Suggestion) + "\n")
		}
	}
	for _, w := range res.Warnings {
		b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
	}
	return b.String()
}

// issueCounts summarises issues per severity, such as "1C 2M".
func issueCounts(res domain.ValidationResult) string {
	if len(res.Issues) == 0 {
		return Dim("none")
	}
	counts := res.CountBySeverity()
	var parts []string
	for _, s := range []domain.Severity{domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		if n := counts[s]; n > 0 {
			parts = append(parts, SeverityColor(s).Render(fmt.Sprintf("%d%s", n, strings.ToUpper(string(s)[:1]))))
		}
	}
	return strings.Join(parts, " ")
}

// FormatRunList renders stored runs, newest first.
func FormatRunList(runs []*domain.ValidationRun) string {
	if len(runs) == 0 {
		return Dim("No validation runs yet.") + "\n"
	}
	headers := []string{"ID", "DESTINATION", "PLANS", "BEST", "WHEN"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		best := Dim("--")
		if res, ok := run.Best(); ok {
			best = fmt.Sprintf("%s %s", res.PlanID, StatusColor(res.Status).Render(fmt.Sprintf("%.1f", res.Score)))
		}
		rows = append(rows, []string{
			ShortID(run.ID),
			run.Destination,
			fmt.Sprintf("%d", len(run.Results)),
			best,
			HumanTimestamp(run.ValidatedAt),
		})
	}
	return RenderTable(headers, rows)
}
