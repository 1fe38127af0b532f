package imaging

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGB color with 8-bit components.
//
// Two colors are equal only when all three components match exactly; use
// Close for tolerance-based similarity.
type Color struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Close reports whether every channel of c differs from other by strictly
// less than tolerance.
//
// This is a per-channel box test, not a Euclidean distance: a tolerance of 30
// accepts (29,29,29) against black but rejects (30,0,0). A tolerance of zero
// or less accepts nothing, not even the color itself.
func (c Color) Close(other Color, tolerance int) bool {
	return channelDelta(c.R, other.R) < tolerance &&
		channelDelta(c.G, other.G) < tolerance &&
		channelDelta(c.B, other.B) < tolerance
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// RGBA implements color.Color so a Color can be passed directly to the
// image/draw APIs. The color is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Colorful converts the color to go-colorful's float representation.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// ParseHex parses "#RRGGBB", "RRGGBB" or the short "#RGB" form.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("invalid hex color length: %q", s)
	}
	cf, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func channelDelta(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// HSL returns the color in HSL space, rounded to whole degrees and percent.
func (c Color) HSL() HSLColor {
	h, s, l := c.Colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB Color    `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - buf: The buffer to sample from.
//   - p: Pixel coordinate (0-based, origin top-left).
//
// Returns:
//   - *ColorResult: The color at p in hex, RGB and HSL form.
//   - error: Non-nil (wrapping ErrOutOfBounds) if p is outside the buffer.
func SampleColor(buf *Buffer, p Point) (*ColorResult, error) {
	c, err := buf.At(p)
	if err != nil {
		return nil, err
	}
	return &ColorResult{
		Hex: c.Hex(),
		RGB: c,
		HSL: c.HSL(),
	}, nil
}
