package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test map geometry: a 200x300 screen whose left half is white and right
// half black, with a 2x2 grey island inside the white half. The palette
// swatches start at x 50 and cover y 150..260, so map clicks stay left of
// x 50 or outside that band.
var (
	leftPoint   = map[string]interface{}{"x": 20, "y": 20}
	rightPoint  = map[string]interface{}{"x": 150, "y": 20}
	islandPoint = map[string]interface{}{"x": 10, "y": 190}
)

func writeTestMap(t *testing.T) string {
	t.Helper()
	return writeMap(t, 200, 300)
}

func writeMap(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if x >= width/2 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.Set(x, y, c)
		}
	}
	for y := 190; y < 192; y++ {
		for x := 10; x < 12; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "map.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// callTool runs one tools/call request and returns the raw response.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	paramsJSON, err := json.Marshal(params)
	require.NoError(t, err)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	require.NotNil(t, resp)
	return resp
}

// mustCall runs a tool that is expected to succeed and decodes its result
// into a zeroed out, so omitted fields never leak from a previous call.
func mustCall(t *testing.T, s *Server, name string, args interface{}, out interface{}) {
	t.Helper()

	resp := callTool(t, s, name, args)
	require.Nil(t, resp.Error, "tool %s failed: %+v", name, resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	content, ok := result["content"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, content, 1)
	assert.Equal(t, "text", content[0]["type"])

	text, ok := content[0]["text"].(string)
	require.True(t, ok)
	v := reflect.ValueOf(out).Elem()
	v.Set(reflect.Zero(v.Type()))
	require.NoError(t, json.Unmarshal([]byte(text), out))
}

func loadedServer(t *testing.T) *Server {
	t.Helper()
	s := newTestServer()
	var res LoadResult
	mustCall(t, s, "map_load", map[string]interface{}{"path": writeTestMap(t)}, &res)
	return s
}

func withColor(p map[string]interface{}, name string) map[string]interface{} {
	out := map[string]interface{}{"color": name}
	for k, v := range p {
		out[k] = v
	}
	return out
}

func TestMapLoad(t *testing.T) {
	s := newTestServer()
	path := writeTestMap(t)

	var res LoadResult
	mustCall(t, s, "map_load", map[string]interface{}{"path": path}, &res)

	assert.Equal(t, path, res.Path)
	assert.Equal(t, 200, res.Width)
	assert.Equal(t, 300, res.Height)
	assert.Equal(t, 200, res.NativeWidth)
	assert.Equal(t, 30, res.Tolerance)
	assert.Equal(t, 5, res.MinPixels)
	assert.Len(t, res.Palette, 12)
	assert.True(t, res.PaletteShown)
}

func TestMapLoad_ScalesToConfiguredSize(t *testing.T) {
	s := newTestServer()
	s.cfg.MapWidth = 400
	s.cfg.MapHeight = 300

	var res LoadResult
	mustCall(t, s, "map_load", map[string]interface{}{"path": writeTestMap(t)}, &res)

	assert.Equal(t, 400, res.Width)
	assert.Equal(t, 300, res.Height)
	assert.Equal(t, 200, res.NativeWidth)
	assert.Equal(t, 300, res.NativeHeight)
}

func TestMapLoad_Errors(t *testing.T) {
	s := newTestServer()

	resp := callTool(t, s, "map_load", map[string]interface{}{})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)

	resp = callTool(t, s, "map_load", map[string]interface{}{"path": "/nonexistent/map.png"})
	require.NotNil(t, resp.Error)
	assert.Nil(t, s.session)
}

func TestMapDimensions(t *testing.T) {
	s := newTestServer()
	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	mustCall(t, s, "map_dimensions", map[string]interface{}{"path": writeTestMap(t)}, &info)

	assert.Equal(t, 200, info.Width)
	assert.Equal(t, 300, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Nil(t, s.session, "dimensions must not start a session")
}

func TestTools_RequireSession(t *testing.T) {
	s := newTestServer()
	for _, name := range []string{"map_assign_color", "map_click", "map_regions", "map_reset", "map_render", "map_last_outcome", "map_sample_color", "map_detect_regions"} {
		resp := callTool(t, s, name, leftPoint)
		require.NotNil(t, resp.Error, name)
		assert.Contains(t, resp.Error.Data, "map_load", name)
	}
}

func TestUnknownTool(t *testing.T) {
	s := newTestServer()
	resp := callTool(t, s, "image_crop", nil)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "unknown tool")
}

func TestToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
}

func TestMapPaletteAndSelect(t *testing.T) {
	s := newTestServer()

	var pal PaletteResult
	mustCall(t, s, "map_palette", nil, &pal)
	require.Len(t, pal.Colors, 12)
	assert.Equal(t, "red", pal.Selected.Name)

	mustCall(t, s, "map_select_color", map[string]interface{}{"color": "blue"}, &pal)
	assert.Equal(t, 2, pal.Selected.Index)

	mustCall(t, s, "map_select_color", map[string]interface{}{"index": 11}, &pal)
	assert.Equal(t, "white", pal.Selected.Name)

	mustCall(t, s, "map_select_color", map[string]interface{}{"color": "#FFFF00"}, &pal)
	assert.Equal(t, "yellow", pal.Selected.Name)
	assert.Equal(t, 3, s.selected)

	for _, bad := range []map[string]interface{}{
		{},
		{"index": 12},
		{"color": "mauve"},
		{"color": "#123456"},
	} {
		resp := callTool(t, s, "map_select_color", bad)
		assert.NotNil(t, resp.Error, "%v", bad)
	}
	assert.Equal(t, 3, s.selected, "failed selections keep the old color")
}

func TestMapAssignColor_SuccessAndConflict(t *testing.T) {
	s := loadedServer(t)

	var res AssignResult
	mustCall(t, s, "map_assign_color", withColor(leftPoint, "red"), &res)
	require.True(t, res.Success)
	assert.Equal(t, "success", res.Outcome)
	require.NotNil(t, res.Region)
	assert.Equal(t, 1, res.Region.ID)
	assert.Equal(t, "#FF0000", res.Region.Color)
	assert.Equal(t, "red", res.Region.ColorName)
	assert.Equal(t, 100*300-4, res.Region.PixelCount)

	// The black half touches the red half.
	mustCall(t, s, "map_assign_color", withColor(rightPoint, "red"), &res)
	assert.False(t, res.Success)
	assert.Equal(t, "adjacent_color_conflict", res.Outcome)
	assert.Equal(t, "Adjacent region already has this color!", res.Warning)
	assert.Equal(t, 1, res.ConflictRegionID)
	assert.Nil(t, res.Region)

	var regions RegionsResult
	mustCall(t, s, "map_regions", nil, &regions)
	assert.Equal(t, 1, regions.Count, "rejected assignment must not add a region")

	mustCall(t, s, "map_assign_color", withColor(rightPoint, "blue"), &res)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.Region.ID)
	assert.Empty(t, res.Warning)
}

func TestMapAssignColor_TooSmall(t *testing.T) {
	s := loadedServer(t)

	var res AssignResult
	mustCall(t, s, "map_assign_color", islandPoint, &res)
	assert.False(t, res.Success)
	assert.Equal(t, "region_too_small", res.Outcome)
	assert.Equal(t, "Click inside a valid region!", res.Warning)

	var last AssignResult
	mustCall(t, s, "map_last_outcome", nil, &last)
	assert.Equal(t, res, last)
}

func TestMapAssignColor_OutOfBoundsIsToolError(t *testing.T) {
	s := loadedServer(t)
	resp := callTool(t, s, "map_assign_color", map[string]interface{}{"x": 200, "y": 0})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Data, "invalid coordinate")
}

func TestMapAssignColor_UsesSelection(t *testing.T) {
	s := loadedServer(t)

	var pal PaletteResult
	mustCall(t, s, "map_select_color", map[string]interface{}{"color": "green"}, &pal)

	var res AssignResult
	mustCall(t, s, "map_assign_color", leftPoint, &res)
	require.True(t, res.Success)
	assert.Equal(t, "green", res.Region.ColorName)
}

func TestMapClick(t *testing.T) {
	s := loadedServer(t)

	var click ClickResult

	// Second swatch in the first row.
	mustCall(t, s, "map_click", map[string]interface{}{"x": 135, "y": 175}, &click)
	assert.Equal(t, "select", click.Action)
	require.NotNil(t, click.Selected)
	assert.Equal(t, "green", click.Selected.Name)

	mustCall(t, s, "map_click", leftPoint, &click)
	assert.Equal(t, "assign", click.Action)
	require.NotNil(t, click.Assign)
	assert.True(t, click.Assign.Success)
	assert.Equal(t, "green", click.Assign.Region.ColorName)

	mustCall(t, s, "map_click", rightPoint, &click)
	require.NotNil(t, click.Assign)
	assert.False(t, click.Assign.Success)
	assert.Equal(t, "Adjacent region already has this color!", click.Assign.Warning)

	// Picking a color clears the warning.
	mustCall(t, s, "map_click", map[string]interface{}{"x": 75, "y": 235}, &click)
	assert.Equal(t, "select", click.Action)
	assert.Equal(t, 8, click.Selected.Index)
	var last AssignResult
	mustCall(t, s, "map_last_outcome", nil, &last)
	assert.Empty(t, last.Warning)

	mustCall(t, s, "map_click", map[string]interface{}{"x": -5, "y": 500}, &click)
	assert.Equal(t, "ignored", click.Action)
	assert.Nil(t, click.Assign)
}

// Below 230 pixels the palette would cover the map, so clicks always paint.
func TestMapClick_ShortMapHasNoPalette(t *testing.T) {
	s := newTestServer()
	var load LoadResult
	mustCall(t, s, "map_load", map[string]interface{}{"path": writeMap(t, 200, 200)}, &load)
	assert.False(t, load.PaletteShown)

	var click ClickResult
	mustCall(t, s, "map_click", map[string]interface{}{"x": 75, "y": 75}, &click)
	assert.Equal(t, "assign", click.Action)
	require.NotNil(t, click.Assign)
	assert.True(t, click.Assign.Success)
	assert.Equal(t, "red", click.Assign.Region.ColorName)

	var r RenderResult
	mustCall(t, s, "map_render", nil, &r)
	img := decodeRender(t, r)
	assert.Equal(t, [3]uint8{255, 0, 0}, rgbAt(img, 75, 75), "painted, not a swatch")
}

func TestMapRegions_History(t *testing.T) {
	s := loadedServer(t)

	var res AssignResult
	mustCall(t, s, "map_assign_color", withColor(leftPoint, "red"), &res)
	mustCall(t, s, "map_assign_color", withColor(leftPoint, "yellow"), &res)
	require.True(t, res.Success)

	var regions RegionsResult
	mustCall(t, s, "map_regions", nil, &regions)
	require.Equal(t, 1, regions.Count)
	assert.Equal(t, "yellow", regions.Regions[0].ColorName)
	assert.Equal(t, 2, regions.Regions[0].ID)

	assert.Equal(t, 3, regions.NextID)

	mustCall(t, s, "map_regions", map[string]interface{}{"history": true}, &regions)
	assert.Equal(t, 2, regions.Count)

	mustCall(t, s, "map_regions", map[string]interface{}{"id": 1}, &regions)
	require.Equal(t, 1, regions.Count)
	assert.Equal(t, "red", regions.Regions[0].ColorName)

	resp := callTool(t, s, "map_regions", map[string]interface{}{"id": 9})
	assert.NotNil(t, resp.Error)
}

func TestMapAssignColor_SameColorAgainConflicts(t *testing.T) {
	s := loadedServer(t)

	var res AssignResult
	mustCall(t, s, "map_assign_color", withColor(leftPoint, "red"), &res)
	require.True(t, res.Success)

	mustCall(t, s, "map_assign_color", withColor(leftPoint, "red"), &res)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.ConflictRegionID)

	// A recolored half keeps its red record, which still blocks red next door.
	mustCall(t, s, "map_assign_color", withColor(leftPoint, "blue"), &res)
	require.True(t, res.Success)
	mustCall(t, s, "map_assign_color", withColor(rightPoint, "red"), &res)
	assert.False(t, res.Success)
	assert.Equal(t, "adjacent_color_conflict", res.Outcome)
	assert.Equal(t, 1, res.ConflictRegionID)
}

func TestMapReset(t *testing.T) {
	s := loadedServer(t)

	var res AssignResult
	mustCall(t, s, "map_assign_color", withColor(leftPoint, "red"), &res)

	var reset ResetResult
	mustCall(t, s, "map_reset", nil, &reset)
	assert.True(t, reset.Reset)
	assert.Equal(t, 0, reset.Regions)

	var sample SampleResult
	mustCall(t, s, "map_sample_color", leftPoint, &sample)
	assert.Equal(t, "#FFFFFF", sample.Hex)

	mustCall(t, s, "map_assign_color", withColor(rightPoint, "red"), &res)
	require.True(t, res.Success, "conflicts do not survive a reset")
	assert.Equal(t, 1, res.Region.ID, "ids restart after reset")
}

func TestMapSampleColor(t *testing.T) {
	s := loadedServer(t)

	var res AssignResult
	mustCall(t, s, "map_assign_color", withColor(leftPoint, "red"), &res)

	var sample SampleResult
	mustCall(t, s, "map_sample_color", leftPoint, &sample)
	assert.Equal(t, "#FF0000", sample.Hex)
	assert.Equal(t, "red", sample.NearestPalette.Name)

	mustCall(t, s, "map_sample_color", map[string]interface{}{"x": 20, "y": 20, "source": true}, &sample)
	assert.Equal(t, "#FFFFFF", sample.Hex)
	assert.Equal(t, "white", sample.NearestPalette.Name)

	mustCall(t, s, "map_sample_color", map[string]interface{}{"x": 10, "y": 190}, &sample)
	assert.Equal(t, "#808080", sample.Hex)
	assert.Equal(t, 0, sample.HSL.S)

	resp := callTool(t, s, "map_sample_color", map[string]interface{}{"x": 0, "y": 300})
	assert.NotNil(t, resp.Error)
}

func TestMapDetectRegions(t *testing.T) {
	s := loadedServer(t)

	var res struct {
		Count        int      `json:"count"`
		Fragments    int      `json:"fragments"`
		Neighbors    [][2]int `json:"neighbors"`
		ColorsNeeded int      `json:"colors_needed"`
	}
	mustCall(t, s, "map_detect_regions", nil, &res)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 1, res.Fragments)
	assert.Equal(t, [][2]int{{0, 1}}, res.Neighbors)
	assert.Equal(t, 2, res.ColorsNeeded)

	mustCall(t, s, "map_detect_regions", map[string]interface{}{"min_pixels": 1}, &res)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 0, res.Fragments)
}

func decodeRender(t *testing.T, r RenderResult) image.Image {
	t.Helper()
	assert.Equal(t, "image/png", r.MimeType)
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func rgbAt(img image.Image, x, y int) [3]uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// Load, click, render: the painted region shows up in the frame.
func TestMapRender_RoundTrip(t *testing.T) {
	s := loadedServer(t)

	var click ClickResult
	mustCall(t, s, "map_click", map[string]interface{}{"x": 20, "y": 190}, &click)
	require.True(t, click.Assign.Success)

	var r RenderResult
	mustCall(t, s, "map_render", nil, &r)
	assert.Equal(t, 200, r.Width)
	assert.Equal(t, 300, r.Height)
	assert.Empty(t, r.Warning)

	img := decodeRender(t, r)
	assert.Equal(t, [3]uint8{255, 0, 0}, rgbAt(img, 20, 190), "painted pixel")
	assert.Equal(t, [3]uint8{0, 0, 0}, rgbAt(img, 190, 280), "unpainted pixel")
	assert.Equal(t, [3]uint8{0, 255, 0}, rgbAt(img, 135, 175), "green swatch")

	mustCall(t, s, "map_render", map[string]interface{}{"scale": 2.0}, &r)
	assert.Equal(t, 400, r.Width)
	assert.Equal(t, 600, r.Height)
}

func TestMapRender_PlainAndWarning(t *testing.T) {
	s := loadedServer(t)

	var res AssignResult
	mustCall(t, s, "map_assign_color", islandPoint, &res)

	var r RenderResult
	mustCall(t, s, "map_render", nil, &r)
	assert.Equal(t, "Click inside a valid region!", r.Warning)

	mustCall(t, s, "map_render", map[string]interface{}{"plain": true}, &r)
	img := decodeRender(t, r)
	assert.Equal(t, [3]uint8{255, 255, 255}, rgbAt(img, 75, 75), "no swatch drawn on a plain render")

	mustCall(t, s, "map_render", map[string]interface{}{"plain": true, "labels": true}, &r)
	assert.Equal(t, 200, r.Width)
}

func TestMapRender_AreaAndGrid(t *testing.T) {
	s := loadedServer(t)

	var r RenderResult
	mustCall(t, s, "map_render", map[string]interface{}{"area": "right-half", "plain": true}, &r)
	assert.Equal(t, 100, r.Width)
	assert.Equal(t, 300, r.Height)
	img := decodeRender(t, r)
	assert.Equal(t, [3]uint8{0, 0, 0}, rgbAt(img, 10, 10), "right half is black")

	mustCall(t, s, "map_render", map[string]interface{}{"plain": true, "grid": 50}, &r)
	img = decodeRender(t, r)
	assert.Equal(t, [3]uint8{255, 255, 255}, rgbAt(img, 20, 20))
	assert.NotEqual(t, [3]uint8{255, 255, 255}, rgbAt(img, 50, 20), "grid line")

	resp := callTool(t, s, "map_render", map[string]interface{}{"area": "middle"})
	assert.NotNil(t, resp.Error)
}
