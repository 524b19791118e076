package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/importer"
)

func newSchemaCmd() *cobra.Command {
	var planOnly bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the plan file format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := importer.PlanFileSchema()
			if planOnly {
				schema = importer.PlanSchema()
			}
			data, err := importer.SchemaJSON(schema)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().BoolVar(&planOnly, "plan", false, "Print the schema of a single plan object")
	return cmd
}
