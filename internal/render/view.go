package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	gridColor = color.RGBA{128, 0, 0, 128} // half-transparent red
	gridLabel = color.RGBA{255, 255, 255, 255}
)

// Grid draws coordinate lines every spacing pixels over img, in place. When
// showCoordinates is set each intersection is tagged with its "x,y" so a
// client reading the frame can pick click targets. A spacing below 1 draws
// nothing.
func Grid(img *image.RGBA, spacing int, showCoordinates bool) {
	if spacing < 1 {
		return
	}
	b := img.Bounds()

	for x := b.Min.X + spacing; x < b.Max.X; x += spacing {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			blend(img, x, y, gridColor)
		}
	}
	for y := b.Min.Y + spacing; y < b.Max.Y; y += spacing {
		for x := b.Min.X; x < b.Max.X; x++ {
			blend(img, x, y, gridColor)
		}
	}

	if !showCoordinates {
		return
	}
	face := basicfont.Face7x13
	for y := b.Min.Y + spacing; y < b.Max.Y; y += spacing {
		for x := b.Min.X + spacing; x < b.Max.X; x += spacing {
			text := fmt.Sprintf("%d,%d", x, y)
			w := font.MeasureString(face, text).Ceil()
			h := face.Metrics().Height.Ceil()
			box := image.Rect(x+1, y+1, x+w+3, y+h+3)
			fillOver(img, box, labelBG)
			drawText(img, x+2, y+2, text, gridLabel)
		}
	}
}

func blend(img *image.RGBA, x, y int, c color.RGBA) {
	fillOver(img, image.Rect(x, y, x+1, y+1), c)
}

// Areas lists the names accepted by Area.
var Areas = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half",
	"center", "palette",
}

// Area returns the named part of a width x height screen. "palette" is the
// band holding the swatch grid; "center" is the middle 50% in each
// direction.
func Area(width, height int, name string) (image.Rectangle, error) {
	midX, midY := width/2, height/2

	switch name {
	case "top-left":
		return image.Rect(0, 0, midX, midY), nil
	case "top-right":
		return image.Rect(midX, 0, width, midY), nil
	case "bottom-left":
		return image.Rect(0, midY, midX, height), nil
	case "bottom-right":
		return image.Rect(midX, midY, width, height), nil
	case "top-half":
		return image.Rect(0, 0, width, midY), nil
	case "bottom-half":
		return image.Rect(0, midY, width, height), nil
	case "left-half":
		return image.Rect(0, 0, midX, height), nil
	case "right-half":
		return image.Rect(midX, 0, width, height), nil
	case "center":
		qW, qH := width/4, height/4
		return image.Rect(qW, qH, width-qW, height-qH), nil
	case "palette":
		r := image.Rect(0, height-PaletteBottom, width, height)
		return r.Intersect(image.Rect(0, 0, width, height)), nil
	default:
		return image.Rectangle{}, fmt.Errorf("unknown area: %s", name)
	}
}

// Crop cuts r out of img. The result's origin is (0,0).
func Crop(img image.Image, r image.Rectangle) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("crop area is empty")
	}
	b := img.Bounds()
	if !r.In(b) {
		return nil, fmt.Errorf("crop area (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}
	return imaging.Crop(img, r), nil
}
