package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/httpapi"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := app.logger()
			router := httpapi.NewRouter(httpapi.NewHandler(app.Validations, app.Refinements), logger)
			return httpapi.Serve(cmd.Context(), addr, router, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from ITINERA_HTTP_ADDR)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if addr == "" {
			addr = app.HTTPAddr
		}
		if addr == "" {
			addr = ":8080"
		}
	}
	return cmd
}
