package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/mapcolor-mcp/internal/coloring"
	"github.com/ironsheep/mapcolor-mcp/internal/detection"
	"github.com/ironsheep/mapcolor-mcp/internal/imaging"
	"github.com/ironsheep/mapcolor-mcp/internal/palette"
	"github.com/ironsheep/mapcolor-mcp/internal/region"
	"github.com/ironsheep/mapcolor-mcp/internal/render"
)

// errNoMap is returned by tools that need a loaded map.
var errNoMap = errors.New("no map loaded; call map_load first")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "map_load", "map_click").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Rejected color assignments are not errors: they come back as a normal
// result with "success": false and the warning to show.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.mu.Lock()
	result, err := s.executeTool(params.Name, params.Arguments)
	s.mu.Unlock()
	if err != nil {
		s.log.WithFields(logrus.Fields{"tool": params.Name}).WithError(err).Warn("Tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
// The caller holds s.mu.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Session
	case "map_load":
		return s.handleMapLoad(args)
	case "map_dimensions":
		return s.handleMapDimensions(args)
	case "map_reset":
		return s.handleMapReset(args)

	// Palette
	case "map_palette":
		return s.handleMapPalette(args)
	case "map_select_color":
		return s.handleMapSelectColor(args)

	// Coloring
	case "map_assign_color":
		return s.handleMapAssignColor(args)
	case "map_click":
		return s.handleMapClick(args)
	case "map_regions":
		return s.handleMapRegions(args)
	case "map_last_outcome":
		return s.handleMapLastOutcome(args)

	// Inspection
	case "map_render":
		return s.handleMapRender(args)
	case "map_sample_color":
		return s.handleMapSampleColor(args)
	case "map_detect_regions":
		return s.handleMapDetectRegions(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func (s *Server) requireSession() (*session, error) {
	if s.session == nil {
		return nil, errNoMap
	}
	return s.session, nil
}

// === Session Handlers ===

type mapPathArgs struct {
	Path string `json:"path"`
}

// LoadResult describes a freshly loaded map session.
type LoadResult struct {
	Path         string          `json:"path"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	NativeWidth  int             `json:"native_width"`
	NativeHeight int             `json:"native_height"`
	Tolerance    int             `json:"tolerance"`
	MinPixels    int             `json:"min_region_pixels"`
	Palette      palette.Palette `json:"palette"`

	// PaletteShown is false when the map is too short for on-screen
	// swatches; map_click then always paints.
	PaletteShown bool `json:"palette_shown"`
}

func (s *Server) handleMapLoad(args json.RawMessage) (interface{}, error) {
	var a mapPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	info, err := imaging.LoadMapInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	buf, err := imaging.LoadBuffer(s.cache, a.Path, s.cfg.MapWidth, s.cfg.MapHeight)
	if err != nil {
		return nil, err
	}

	eng := coloring.NewEngine(buf,
		coloring.WithTolerance(s.cfg.Tolerance),
		coloring.WithMinRegionPixels(s.cfg.MinRegionPixels),
		coloring.WithLogger(s.log.WithFields(logrus.Fields{"component": "coloring", "map": a.Path})),
	)
	s.session = &session{
		path:         a.Path,
		engine:       eng,
		nativeWidth:  info.Width,
		nativeHeight: info.Height,
	}

	s.log.WithFields(logrus.Fields{
		"path":   a.Path,
		"width":  eng.Width(),
		"height": eng.Height(),
	}).Info("Map loaded")
	if !render.PaletteFits(eng.Height()) {
		s.log.WithField("min_height", render.MinPaletteHeight).Warn("Map too short for palette swatches; select colors by name")
	}

	return &LoadResult{
		Path:         a.Path,
		Width:        eng.Width(),
		Height:       eng.Height(),
		NativeWidth:  info.Width,
		NativeHeight: info.Height,
		Tolerance:    eng.Tolerance(),
		MinPixels:    eng.MinRegionPixels(),
		Palette:      s.palette,
		PaletteShown: render.PaletteFits(eng.Height()),
	}, nil
}

func (s *Server) handleMapDimensions(args json.RawMessage) (interface{}, error) {
	var a mapPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadMapInfo(s.cache, a.Path)
}

// ResetResult confirms a reset.
type ResetResult struct {
	Reset   bool `json:"reset"`
	Regions int  `json:"regions"`
}

func (s *Server) handleMapReset(args json.RawMessage) (interface{}, error) {
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	sess.engine.Reset()
	return &ResetResult{Reset: true, Regions: len(sess.engine.Regions())}, nil
}

// === Palette Handlers ===

// PaletteResult lists the palette and the current selection.
type PaletteResult struct {
	Colors   palette.Palette `json:"colors"`
	Selected palette.Entry   `json:"selected"`
}

func (s *Server) handleMapPalette(args json.RawMessage) (interface{}, error) {
	return &PaletteResult{Colors: s.palette, Selected: s.palette[s.selected]}, nil
}

// colorChoice picks a palette entry by index or by name/hex. Empty means
// "use the current selection".
type colorChoice struct {
	Index *int   `json:"index,omitempty"`
	Color string `json:"color,omitempty"`
}

func (s *Server) resolveColor(c colorChoice) (palette.Entry, error) {
	switch {
	case c.Index != nil:
		return s.palette.At(*c.Index)
	case c.Color != "":
		return s.palette.Lookup(c.Color)
	default:
		return s.palette[s.selected], nil
	}
}

func (s *Server) handleMapSelectColor(args json.RawMessage) (interface{}, error) {
	var a colorChoice
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Index == nil && a.Color == "" {
		return nil, fmt.Errorf("index or color is required")
	}
	entry, err := s.resolveColor(a)
	if err != nil {
		return nil, err
	}
	s.selectColor(entry.Index)
	return &PaletteResult{Colors: s.palette, Selected: entry}, nil
}

// selectColor changes the selection and, like a palette click, clears the
// pending warning.
func (s *Server) selectColor(i int) {
	s.selected = i
	if s.session != nil {
		s.session.engine.ClearOutcome()
	}
}

// === Coloring Handlers ===

// RegionInfo is the wire form of a committed region.
type RegionInfo struct {
	ID         int           `json:"id"`
	Color      string        `json:"color"`
	ColorName  string        `json:"color_name,omitempty"`
	PixelCount int           `json:"pixel_count"`
	Centroid   imaging.Point `json:"centroid"`
	Bounds     region.Bounds `json:"bounds"`
}

func (s *Server) regionInfo(r region.Region) RegionInfo {
	info := RegionInfo{
		ID:         r.ID,
		Color:      r.Color.Hex(),
		PixelCount: r.Size(),
		Centroid:   r.Centroid,
		Bounds:     r.Pixels.Bounds(),
	}
	if i := s.palette.IndexOf(r.Color); i >= 0 {
		info.ColorName = s.palette[i].Name
	}
	return info
}

// AssignResult reports the outcome of a color assignment.
type AssignResult struct {
	Success          bool        `json:"success"`
	Outcome          string      `json:"outcome"`
	Warning          string      `json:"warning,omitempty"`
	Region           *RegionInfo `json:"region,omitempty"`
	ConflictRegionID int         `json:"conflict_region_id,omitempty"`
	Detail           string      `json:"detail,omitempty"`
}

type assignArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
	colorChoice
}

func (s *Server) handleMapAssignColor(args json.RawMessage) (interface{}, error) {
	var a assignArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	entry, err := s.resolveColor(a.colorChoice)
	if err != nil {
		return nil, err
	}
	return s.assign(sess, imaging.Point{X: a.X, Y: a.Y}, entry)
}

// assign runs one assignment. Domain rejections become an unsuccessful
// result; only an invalid coordinate is a tool error.
func (s *Server) assign(sess *session, p imaging.Point, entry palette.Entry) (*AssignResult, error) {
	_, err := sess.engine.AssignColor(p, entry.Color)
	if errors.Is(err, coloring.ErrInvalidCoordinate) {
		return nil, err
	}
	return s.assignResult(sess.engine.LastOutcome()), nil
}

func (s *Server) assignResult(out coloring.Outcome) *AssignResult {
	res := &AssignResult{
		Success:          out.Success(),
		Outcome:          out.Kind.String(),
		Warning:          out.Warning(),
		ConflictRegionID: out.ConflictID,
		Detail:           out.Detail,
	}
	if out.Region != nil {
		info := s.regionInfo(*out.Region)
		res.Region = &info
	}
	return res
}

type clickArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ClickResult reports what a screen click did.
type ClickResult struct {
	// Action is "select" (palette swatch hit), "assign" (map painted or
	// rejected) or "ignored" (outside the map).
	Action   string         `json:"action"`
	Selected *palette.Entry `json:"selected,omitempty"`
	Assign   *AssignResult  `json:"assign,omitempty"`
}

func (s *Server) handleMapClick(args json.RawMessage) (interface{}, error) {
	var a clickArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}

	p := imaging.Point{X: a.X, Y: a.Y}
	if i, ok := render.HitPalette(sess.engine.Height(), s.palette.Len(), p); ok {
		s.selectColor(i)
		entry := s.palette[i]
		return &ClickResult{Action: "select", Selected: &entry}, nil
	}

	res, err := s.assign(sess, p, s.palette[s.selected])
	if err != nil {
		// Clicks off the map are dropped, as on screen.
		return &ClickResult{Action: "ignored"}, nil
	}
	return &ClickResult{Action: "assign", Assign: res}, nil
}

// RegionsResult lists committed regions.
type RegionsResult struct {
	Regions []RegionInfo `json:"regions"`
	Count   int          `json:"count"`
	NextID  int          `json:"next_id"`
}

type regionsArgs struct {
	// History includes regions that were later recolored.
	History bool `json:"history"`
	// ID selects a single region, current or not.
	ID int `json:"id"`
}

func (s *Server) handleMapRegions(args json.RawMessage) (interface{}, error) {
	var a regionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}

	var regions []region.Region
	switch {
	case a.ID != 0:
		r, ok := sess.engine.Region(a.ID)
		if !ok {
			return nil, fmt.Errorf("no region with id %d", a.ID)
		}
		regions = []region.Region{r}
	case a.History:
		regions = sess.engine.Regions()
	default:
		regions = sess.engine.CurrentRegions()
	}

	out := make([]RegionInfo, 0, len(regions))
	for _, r := range regions {
		out = append(out, s.regionInfo(r))
	}
	return &RegionsResult{Regions: out, Count: len(out), NextID: sess.engine.NextRegionID()}, nil
}

func (s *Server) handleMapLastOutcome(args json.RawMessage) (interface{}, error) {
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	return s.assignResult(sess.engine.LastOutcome()), nil
}

// === Inspection Handlers ===

type renderArgs struct {
	Labels bool    `json:"labels"`
	Scale  float64 `json:"scale"`
	// Plain skips the palette, title and warning overlay.
	Plain bool `json:"plain"`
	// Grid draws coordinate lines every Grid pixels.
	Grid        int  `json:"grid"`
	Coordinates bool `json:"coordinates"`
	// Area crops the frame to a named part of the screen.
	Area string `json:"area"`
}

// RenderResult is a rendered frame plus the warning it shows.
type RenderResult struct {
	imaging.EncodedImage
	Warning string `json:"warning,omitempty"`
}

func (s *Server) handleMapRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}

	frame := render.Frame{
		Map:      sess.engine.DrawBuffer(),
		Selected: s.selected,
	}
	warning := sess.engine.LastOutcome().Warning()
	if !a.Plain {
		frame.Palette = s.palette
		frame.Title = s.cfg.Title
		frame.Warning = warning
	}
	if a.Labels {
		for _, r := range sess.engine.CurrentRegions() {
			frame.Labels = append(frame.Labels, render.Label{Text: fmt.Sprint(r.ID), At: r.Centroid})
		}
	}

	screen := render.Compose(frame)
	render.Grid(screen, a.Grid, a.Coordinates)

	var out image.Image = screen
	if a.Area != "" {
		area, err := render.Area(sess.engine.Width(), sess.engine.Height(), a.Area)
		if err != nil {
			return nil, err
		}
		if out, err = render.Crop(screen, area); err != nil {
			return nil, err
		}
	}

	encoded, err := imaging.EncodePNG(render.Scale(out, a.Scale))
	if err != nil {
		return nil, err
	}
	return &RenderResult{EncodedImage: *encoded, Warning: warning}, nil
}

type sampleArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
	// Source samples the original map instead of the painted one.
	Source bool `json:"source"`
}

// SampleResult is a sampled color with its nearest palette entry.
type SampleResult struct {
	imaging.ColorResult
	NearestPalette palette.Entry `json:"nearest_palette"`
}

func (s *Server) handleMapSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}

	buf := sess.engine.DrawBuffer()
	if a.Source {
		buf = sess.engine.SourceBuffer()
	}
	c, err := imaging.SampleColor(buf, imaging.Point{X: a.X, Y: a.Y})
	if err != nil {
		return nil, err
	}
	return &SampleResult{ColorResult: *c, NearestPalette: s.palette.Nearest(c.RGB)}, nil
}

type detectArgs struct {
	Tolerance int `json:"tolerance"`
	MinPixels int `json:"min_pixels"`
}

func (s *Server) handleMapDetectRegions(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	if a.Tolerance == 0 {
		a.Tolerance = sess.engine.Tolerance()
	}
	if a.MinPixels == 0 {
		a.MinPixels = sess.engine.MinRegionPixels()
	}
	return detection.DetectRegions(sess.engine.SourceBuffer(), a.Tolerance, a.MinPixels), nil
}
