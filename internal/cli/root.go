package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/service"
)

// App holds the services and settings the commands run against.
type App struct {
	Validations service.ValidationService
	Refinements service.RefinementService

	Logger         *slog.Logger
	HTTPAddr       string
	MaxRefinements int
	// LLMEnabled reports whether a language model is configured; refine
	// refuses to start without one.
	LLMEnabled bool

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// PromptFeedback asks for the next round of feedback. Returning "" ends
	// the session. Nil uses a huh prompt.
	PromptFeedback func(round, maxRounds int) (string, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// NewRootCmd creates the top-level "itinera" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "itinera",
		Short:         "Validate and refine multi-day trip itineraries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newValidateCmd(app),
		newRunsCmd(app),
		newRefineCmd(app),
		newHistoryCmd(app),
		newSchemaCmd(),
		newServeCmd(app),
	)

	return root
}
