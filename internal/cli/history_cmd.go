package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history [SESSION_ID]",
		Short: "Show a refinement session, or list sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				sessions, err := app.Refinements.ListSessions(ctx, limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, sessions)
				}
				fmt.Fprint(out, formatter.FormatSessionList(sessions))
				return nil
			}

			header, entries, err := app.Refinements.History(ctx, args[0])
			if err != nil {
				return fmt.Errorf("session %s: %w", args[0], err)
			}
			if asJSON {
				return writeJSON(out, map[string]any{"session": header, "entries": entries})
			}
			fmt.Fprint(out, formatter.FormatHistory(header, entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to list (0 for all)")
	return cmd
}
