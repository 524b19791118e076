package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/service"
)

func newValidateCmd(app *App) *cobra.Command {
	var (
		req     requirementFlags
		asJSON  bool
		noSave  bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate the plans in a plan file",
		Long: `Validate every plan in a plan file against its trip requirements and
print a status and a 0-100 quality score per plan. Runs are stored unless
--no-save is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := app.Validations.ValidateFile(cmd.Context(), args[0], service.ValidateOptions{
				Override: req.override(),
				Save:     !noSave,
			})
			if err != nil {
				return err
			}

			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating snapshot file: %w", err)
				}
				if err := writeJSON(f, run); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("writing snapshot file: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, run)
			}
			fmt.Fprint(out, formatter.FormatValidationRun(run))
			if outPath != "" {
				fmt.Fprintln(out, formatter.Dim("Snapshot written to "+outPath))
			}
			return nil
		},
	}

	req.register(cmd.Flags(), true)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not store the run")
	cmd.Flags().StringVar(&outPath, "out", "", "Also write the run as a JSON snapshot to `PATH`")

	return cmd
}
