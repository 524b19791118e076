package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style for a validation status.
func StatusColor(status domain.ValidationStatus) lipgloss.Style {
	switch status {
	case domain.StatusApproved:
		return StyleGreen
	case domain.StatusApprovedWithWarnings:
		return StyleYellow
	case domain.StatusNeedsRevision:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusIndicator renders a status such as "● APPROVED".
func StatusIndicator(status domain.ValidationStatus) string {
	label := strings.ReplaceAll(string(status), "_", " ")
	if label == "" {
		label = "UNKNOWN"
	}
	return StatusColor(status).Render("● " + label)
}

// SeverityColor returns the style for an issue severity.
func SeverityColor(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityCritical:
		return StyleRed.Bold(true)
	case domain.SeverityHigh:
		return StyleRed
	case domain.SeverityMedium:
		return StyleYellow
	case domain.SeverityLow:
		return StyleBlue
	default:
		return StyleDim
	}
}

// SeverityTag renders a severity as a bracketed tag such as "[HIGH]".
func SeverityTag(s domain.Severity) string {
	return SeverityColor(s).Render(fmt.Sprintf("[%s]", strings.ToUpper(string(s))))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
