package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	require.NotEmpty(t, tools)

	expectedTools := []string{
		"map_load",
		"map_dimensions",
		"map_reset",
		"map_palette",
		"map_select_color",
		"map_assign_color",
		"map_click",
		"map_regions",
		"map_last_outcome",
		"map_render",
		"map_sample_color",
		"map_detect_regions",
	}

	var names []string
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, expectedTools, names)
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			assert.NotEmpty(t, tool.Description)
			require.NotNil(t, tool.InputSchema)
			assert.Equal(t, "object", tool.InputSchema["type"])

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			require.True(t, ok, "properties should be a map")

			required, _ := tool.InputSchema["required"].([]string)
			for _, name := range required {
				assert.Contains(t, props, name, "required field %s has no property", name)
			}
		})
	}
}

func TestToolDefinitions_EveryToolIsDispatched(t *testing.T) {
	s := newTestServer()
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
		if err != nil {
			assert.NotContains(t, err.Error(), "unknown tool", tool.Name)
		}
	}
}

func TestToolDefinitions_JSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, tool := range decoded {
		assert.Contains(t, tool, "inputSchema")
	}
}
