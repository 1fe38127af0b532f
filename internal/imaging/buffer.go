package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// ErrOutOfBounds is returned when a coordinate lies outside a Buffer.
var ErrOutOfBounds = errors.New("coordinates outside image bounds")

// Point represents a 2D pixel coordinate.
//
// Coordinates are 0-based with origin at the top-left corner.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Buffer is an addressable width × height grid of 8-bit RGB samples.
//
// A Buffer is used both for the immutable source map and for the mutable
// draw surface. All reads and writes are bounds-checked; a Buffer never
// grows or shrinks after creation.
//
// Buffer is not safe for concurrent mutation. Callers that share a Buffer
// across goroutines must synchronize writes themselves.
type Buffer struct {
	width  int
	height int
	pix    []Color
}

// NewBuffer creates a black buffer of the given dimensions.
//
// Negative dimensions are treated as zero.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// NewFilledBuffer creates a buffer with every pixel set to c.
func NewFilledBuffer(width, height int, c Color) *Buffer {
	b := NewBuffer(width, height)
	for i := range b.pix {
		b.pix[i] = c
	}
	return b
}

// BufferFromImage copies an image into a new Buffer.
//
// The image is normalized to RGBA first, so any color model decoded by the
// standard library (paletted GIFs, YCbCr JPEGs, 16-bit PNGs) is accepted.
// The alpha channel is discarded. The buffer's origin is always (0,0) even
// when the image bounds do not start there.
func BufferFromImage(img image.Image) *Buffer {
	rgba := clone.AsRGBA(img)
	bounds := rgba.Bounds()
	b := NewBuffer(bounds.Dx(), bounds.Dy())

	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			off := rgba.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)
			b.pix[y*b.width+x] = Color{
				R: rgba.Pix[off],
				G: rgba.Pix[off+1],
				B: rgba.Pix[off+2],
			}
		}
	}
	return b
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Bounds returns the buffer extent as an image rectangle anchored at (0,0).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// InBounds reports whether p addresses a pixel of the buffer.
func (b *Buffer) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.width && p.Y < b.height
}

// At returns the color at p.
//
// Returns an error wrapping ErrOutOfBounds if p lies outside
// [0,width)×[0,height).
func (b *Buffer) At(p Point) (Color, error) {
	if !b.InBounds(p) {
		return Color{}, fmt.Errorf("get (%d,%d) in %dx%d buffer: %w", p.X, p.Y, b.width, b.height, ErrOutOfBounds)
	}
	return b.pix[p.Y*b.width+p.X], nil
}

// Set writes c at p.
//
// Returns an error wrapping ErrOutOfBounds if p lies outside the buffer; the
// buffer is left untouched in that case.
func (b *Buffer) Set(p Point, c Color) error {
	if !b.InBounds(p) {
		return fmt.Errorf("set (%d,%d) in %dx%d buffer: %w", p.X, p.Y, b.width, b.height, ErrOutOfBounds)
	}
	b.pix[p.Y*b.width+p.X] = c
	return nil
}

// Clone returns an independent deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]Color, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, pix: pix}
}

// Equal reports whether two buffers have the same dimensions and identical
// pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Image returns a fully opaque RGBA copy of the buffer, suitable for PNG
// encoding or blitting. Changes to the returned image do not affect the
// buffer.
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for i, c := range b.pix {
		off := i * 4
		img.Pix[off] = c.R
		img.Pix[off+1] = c.G
		img.Pix[off+2] = c.B
		img.Pix[off+3] = 0xff
	}
	return img
}
