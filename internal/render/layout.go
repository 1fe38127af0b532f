package render

import (
	"image"

	"github.com/ironsheep/mapcolor-mcp/internal/imaging"
)

// Palette layout, in screen pixels. The swatch grid sits over the bottom of
// the map rather than below it.
const (
	SwatchSize     = 50
	SwatchPadding  = 10
	SwatchesPerRow = 8
	PaletteLeft    = 50
	PaletteBottom  = 150 // distance from the bottom edge to the first row

	// paletteClearTop keeps the first swatch row below the title and
	// warning lines.
	paletteClearTop = 80
)

// MinPaletteHeight is the shortest screen that shows the palette. On shorter
// maps the swatches would cover most of the map, so no palette is drawn or
// hit-tested and colors are chosen by index or name only.
const MinPaletteHeight = PaletteBottom + paletteClearTop

// PaletteFits reports whether a screen of the given height shows the palette.
func PaletteFits(height int) bool {
	return height >= MinPaletteHeight
}

// Swatch is the on-screen rectangle of one palette entry.
type Swatch struct {
	Index int             `json:"index"`
	Rect  image.Rectangle `json:"rect"`
}

// PaletteRects lays out n swatches for a screen of the given height.
func PaletteRects(height, n int) []Swatch {
	rects := make([]Swatch, n)
	top := height - PaletteBottom
	for i := 0; i < n; i++ {
		row := i / SwatchesPerRow
		col := i % SwatchesPerRow
		x := PaletteLeft + col*(SwatchSize+SwatchPadding)
		y := top + row*(SwatchSize+SwatchPadding)
		rects[i] = Swatch{Index: i, Rect: image.Rect(x, y, x+SwatchSize, y+SwatchSize)}
	}
	return rects
}

// HitPalette returns the index of the swatch containing p, if any. It never
// hits on screens where the palette does not fit.
func HitPalette(height, n int, p imaging.Point) (int, bool) {
	if !PaletteFits(height) {
		return 0, false
	}
	pt := image.Pt(p.X, p.Y)
	for _, s := range PaletteRects(height, n) {
		if pt.In(s.Rect) {
			return s.Index, true
		}
	}
	return 0, false
}
