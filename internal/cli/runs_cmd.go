package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
)

func newRunsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse stored validation runs",
	}
	cmd.AddCommand(newRunsListCmd(app), newRunsShowCmd(app))
	return cmd
}

func newRunsListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent validation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Validations.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func newRunsShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one validation run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := app.Validations.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("run %s: %w", args[0], err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), run)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidationRun(run))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	return cmd
}
