package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
)

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "plan file rejected (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, b.String())
}

// applyOverride returns a shallow copy of f whose requirements carry the
// override. f itself is not modified.
func applyOverride(f *importer.PlanFile, o RequirementsOverride) *importer.PlanFile {
	out := *f
	if o.Destination != "" {
		out.Destination = o.Destination
	}
	if o.Budget == 0 && o.DurationDays == 0 && f.Requirements == nil {
		return &out
	}

	var r importer.RequirementsImport
	if f.Requirements != nil {
		r = *f.Requirements
	}
	if o.Destination != "" {
		r.Destination = o.Destination
	}
	if o.Budget != 0 {
		r.Budget = importer.NewNumber(o.Budget)
	}
	if o.DurationDays != 0 {
		days := o.DurationDays
		r.DurationDays = &days
	}
	out.Requirements = &r
	return &out
}

// requirementsOf converts the file's requirements. A file without any yields
// nil, which validates plans without a budget.
func requirementsOf(f *importer.PlanFile) (*domain.UserRequirements, error) {
	if f.Requirements == nil {
		return nil, nil
	}
	req, err := importer.ConvertRequirements(f.Requirements, f.Destination)
	if err != nil {
		return nil, fmt.Errorf("%w: requirements: %v", ErrInvalidInput, err)
	}
	return req, nil
}

// destinationOf picks the most specific destination available.
func destinationOf(f *importer.PlanFile, req *domain.UserRequirements) string {
	if req != nil && req.Destination != "" {
		return req.Destination
	}
	return f.Destination
}
