package server

import "github.com/ironsheep/mapcolor-mcp/internal/render"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "map_load",
			Description: "Load a map image and start a new coloring session. Any previous session, its regions and its painted pixels are discarded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image (PNG, JPEG or GIF)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "map_dimensions",
			Description: "Get the width, height and format of a map image file without starting a session.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the map image",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "map_reset",
			Description: "Clear every colored region and restore the map to its original pixels. Region ids restart at 1.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Palette
		{
			Name:        "map_palette",
			Description: "List the twelve palette colors and the currently selected one.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "map_select_color",
			Description: "Select the active palette color by index or by name/hex. Clears any pending warning.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Palette index (0-11)",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Palette color name (e.g. \"red\") or hex (e.g. \"#FF0000\")",
					},
				},
			},
		},

		// Coloring
		{
			Name:        "map_assign_color",
			Description: "Fill the region containing (x, y) with a palette color. The region is the 4-connected area of pixels similar to the seed in the original map. Rejected if the region is smaller than the minimum size or touches a region that already has the same color; rejections return success=false with a warning.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Seed X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Seed Y coordinate (0-based)",
					},
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Optional palette index. Defaults to the selected color",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Optional palette color name or hex. Defaults to the selected color",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "map_click",
			Description: "Simulate a click on the rendered screen. Clicking a palette swatch selects it; clicking the map colors the region with the selected color; clicks outside the map are ignored. Swatches are only drawn and hit-tested on maps at least 230 pixels tall; on shorter maps use map_select_color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Screen X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Screen Y coordinate",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "map_regions",
			Description: "List committed regions with id, color, pixel count, centroid and bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"history": map[string]interface{}{
						"type":        "boolean",
						"description": "Include regions that were later recolored. Default false",
						"default":     false,
					},
					"id": map[string]interface{}{
						"type":        "integer",
						"description": "Return only the region with this id",
					},
				},
			},
		},
		{
			Name:        "map_last_outcome",
			Description: "Get the result of the most recent color assignment and the warning currently shown.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Inspection
		{
			Name:        "map_render",
			Description: "Render the current screen (painted map, palette, title and warning) as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw region ids at region centroids. Default false",
						"default":     false,
					},
					"plain": map[string]interface{}{
						"type":        "boolean",
						"description": "Render only the painted map without palette or text. Default false",
						"default":     false,
					},
					"grid": map[string]interface{}{
						"type":        "integer",
						"description": "Draw coordinate grid lines every N pixels. Default 0 (no grid)",
						"default":     0,
					},
					"coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Label grid intersections with their x,y. Default false",
						"default":     false,
					},
					"area": map[string]interface{}{
						"type":        "string",
						"description": "Crop to part of the screen to zoom in",
						"enum":        render.Areas,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
			},
		},
		{
			Name:        "map_sample_color",
			Description: "Get the color at a map pixel in hex, RGB and HSL, with the nearest palette color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
					"source": map[string]interface{}{
						"type":        "boolean",
						"description": "Sample the original map instead of the painted one. Default false",
						"default":     false,
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "map_detect_regions",
			Description: "Partition the original map into regions, report which regions touch, and suggest a coloring that keeps neighbors apart.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tolerance": map[string]interface{}{
						"type":        "integer",
						"description": "Per-channel similarity tolerance. Defaults to the session tolerance",
					},
					"min_pixels": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest area reported as a region. Defaults to the session minimum",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
