package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	mapimg "github.com/ironsheep/mapcolor-mcp/internal/imaging"
	"github.com/ironsheep/mapcolor-mcp/internal/palette"
)

// DefaultTitle is the instruction line drawn at the top of the screen.
const DefaultTitle = "Click to color | Click palette to choose | R to reset | ESC to exit"

var (
	titleColor   = color.RGBA{0, 0, 0, 255}
	warningColor = color.RGBA{255, 0, 0, 255}
	outlineColor = color.RGBA{0, 0, 0, 255}
	labelFG      = color.RGBA{255, 255, 255, 255}
	labelBG      = color.RGBA{0, 0, 0, 180}
)

// Label is a short text tag drawn centered on a map position.
type Label struct {
	Text string
	At   mapimg.Point
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Map      *mapimg.Buffer
	Palette  palette.Palette
	Selected int
	Title    string
	Warning  string
	Labels   []Label
}

// Compose draws the frame: the map, the palette swatches with the selected
// one outlined, the title, the warning line (if any) and region labels.
// Screens shorter than MinPaletteHeight get no swatches.
func Compose(f Frame) *image.RGBA {
	screen := f.Map.Image()
	height := screen.Bounds().Dy()

	swatches := f.Palette
	if !PaletteFits(height) {
		swatches = nil
	}
	for _, s := range PaletteRects(height, len(swatches)) {
		fill := image.NewUniform(swatches[s.Index].Color)
		draw.Draw(screen, s.Rect, fill, image.Point{}, draw.Src)
		if s.Index == f.Selected {
			strokeRect(screen, s.Rect, 3, outlineColor)
		}
	}

	if f.Title != "" {
		drawText(screen, 40, 20, f.Title, titleColor)
	}
	if f.Warning != "" {
		drawText(screen, 40, 60, f.Warning, warningColor)
	}
	for _, l := range f.Labels {
		drawLabel(screen, l.At, l.Text)
	}

	return screen
}

// Scale resizes a composed frame by factor with nearest-neighbor sampling.
// A factor of 1, or one that is not positive, returns img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor == 1.0 || factor <= 0 {
		return img
	}
	w := int(float64(img.Bounds().Dx()) * factor)
	h := int(float64(img.Bounds().Dy()) * factor)
	if w < 1 || h < 1 {
		return img
	}
	return imaging.Resize(img, w, h, imaging.NearestNeighbor)
}

// strokeRect draws a border of the given width inside r.
func strokeRect(img *image.RGBA, r image.Rectangle, width int, c color.Color) {
	u := image.NewUniform(c)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// drawText renders s with its top-left corner at (x, y).
func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// drawLabel renders text on a translucent box centered at p.
func drawLabel(img *image.RGBA, p mapimg.Point, text string) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()
	box := image.Rect(p.X-w/2-1, p.Y-h/2-1, p.X+w-w/2+1, p.Y+h-h/2+1)
	fillOver(img, box, labelBG)
	drawText(img, box.Min.X+1, box.Min.Y+1, text, labelFG)
}

func fillOver(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Over)
}
