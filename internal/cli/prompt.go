package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
)

// itineraHuhTheme matches huh forms to the formatter palette.
func itineraHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// feedbackForm asks for one round of feedback.
func feedbackForm(round, maxRounds int, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(fmt.Sprintf("What would you like to change? (round %d/%d)", round, maxRounds)).
				Description("Describe the change in your own words. Leave empty or type 'done' to finish.").
				Placeholder("Swap the museum on day 2 for something outdoors").
				CharLimit(1000).
				Value(value),
		),
	).WithTheme(itineraHuhTheme()).WithShowHelp(false)
}

// promptFeedback runs the feedback form. An aborted form or "done" ends the
// session with "".
func promptFeedback(round, maxRounds int) (string, error) {
	var value string
	if err := feedbackForm(round, maxRounds, &value).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", err
	}
	return normalizeFeedback(value), nil
}

func normalizeFeedback(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "done") {
		return ""
	}
	return s
}
