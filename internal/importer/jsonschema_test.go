package importer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSchema(t *testing.T) {
	data, err := SchemaJSON(PlanSchema())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Itinerary plan", doc["title"])

	required, ok := doc["required"].([]any)
	require.True(t, ok)
	assert.Contains(t, required, "plan_id")
	assert.Contains(t, required, "daily_plans")

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "accommodation")
	assert.Contains(t, string(data), `"oneOf"`, "amounts accept numbers or strings")
}

func TestPlanFileSchema(t *testing.T) {
	data, err := SchemaJSON(PlanFileSchema())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"plans"`)
	assert.Contains(t, string(data), `"requirements"`)
}
