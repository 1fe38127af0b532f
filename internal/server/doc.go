// Package server implements the MCP (Model Context Protocol) server for the
// map colorer.
//
// This package provides a JSON-RPC 2.0 server that exposes one interactive
// coloring session through MCP tools. A client loads a map, picks palette
// colors and clicks regions exactly as a user would on screen, and can render
// the screen to check the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: stderr only, so they never corrupt the protocol stream
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - map_load: Load a map and start a session
//   - map_dimensions: Get image size without loading
//   - map_reset: Clear all regions
//
// Palette:
//   - map_palette: List colors and the selection
//   - map_select_color: Change the selection
//
// Coloring:
//   - map_assign_color: Fill the region at a point
//   - map_click: Screen click (palette hit-test, then fill)
//   - map_regions: List committed regions
//   - map_last_outcome: Result of the last assignment
//
// Inspection:
//   - map_render: Rendered screen as PNG
//   - map_sample_color: Pixel color and nearest palette entry
//   - map_detect_regions: Whole-map partition with a suggested coloring
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A rejected assignment (region too small, adjacent conflict) is not an
// error. It is a normal result with "success": false and the warning text.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(server.WithConfig(cfg), server.WithLogger(cfg.NewLogger()))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
