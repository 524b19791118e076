package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/itinera/internal/service"
)

// requirementFlags override the requirements stored in a plan file.
type requirementFlags struct {
	budget      float64
	days        int
	destination string
}

func (f *requirementFlags) register(fs *pflag.FlagSet, withDestination bool) {
	fs.Float64Var(&f.budget, "budget", 0, "Trip budget in dollars (overrides the file)")
	fs.IntVar(&f.days, "days", 0, "Trip length in days (overrides the file)")
	if withDestination {
		fs.StringVar(&f.destination, "destination", "", "Destination name (overrides the file)")
	}
}

func (f *requirementFlags) override() service.RequirementsOverride {
	return service.RequirementsOverride{
		Destination:  f.destination,
		Budget:       f.budget,
		DurationDays: f.days,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
