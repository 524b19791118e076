package importer

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
}

// PlanFileSchema returns the JSON Schema of the plan file format.
func PlanFileSchema() *jsonschema.Schema {
	s := reflector().Reflect(&PlanFile{})
	s.Title = "Itinerary plan file"
	return s
}

// PlanSchema returns the JSON Schema of a single plan object.
func PlanSchema() *jsonschema.Schema {
	s := reflector().Reflect(&PlanImport{})
	s.Title = "Itinerary plan"
	return s
}

// SchemaJSON renders a schema as indented JSON.
func SchemaJSON(s *jsonschema.Schema) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	return data, nil
}
