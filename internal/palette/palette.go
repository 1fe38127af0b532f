// Package palette holds the fixed, ordered set of colors a user can paint
// regions with.
//
// The palette is static configuration rather than engine state. It is shared
// by the engine's callers and the renderer so that region colors always
// compare exactly against the same twelve values.
package palette

import (
	"fmt"
	"strings"

	"github.com/ironsheep/mapcolor-mcp/internal/imaging"
)

// Entry is one palette swatch.
type Entry struct {
	Index int           `json:"index"`
	Name  string        `json:"name"`
	Hex   string        `json:"hex"`
	Color imaging.Color `json:"rgb"`
}

// Palette is an ordered list of swatches.
type Palette []Entry

var defaultPalette = build([]struct {
	name string
	c    imaging.Color
}{
	{"red", imaging.RGB(255, 0, 0)},
	{"green", imaging.RGB(0, 255, 0)},
	{"blue", imaging.RGB(0, 0, 255)},
	{"yellow", imaging.RGB(255, 255, 0)},
	{"orange", imaging.RGB(255, 165, 0)},
	{"purple", imaging.RGB(128, 0, 128)},
	{"cyan", imaging.RGB(0, 255, 255)},
	{"pink", imaging.RGB(255, 192, 203)},
	{"brown", imaging.RGB(139, 69, 19)},
	{"tan", imaging.RGB(210, 180, 140)},
	{"black", imaging.RGB(0, 0, 0)},
	{"white", imaging.RGB(255, 255, 255)},
})

func build(colors []struct {
	name string
	c    imaging.Color
}) Palette {
	p := make(Palette, len(colors))
	for i, c := range colors {
		p[i] = Entry{Index: i, Name: c.name, Hex: c.c.Hex(), Color: c.c}
	}
	return p
}

// Default returns the twelve predefined colors in their fixed order. The
// returned slice is a copy.
func Default() Palette {
	out := make(Palette, len(defaultPalette))
	copy(out, defaultPalette)
	return out
}

// Len returns the number of swatches.
func (p Palette) Len() int {
	return len(p)
}

// At returns the entry at index i.
func (p Palette) At(i int) (Entry, error) {
	if i < 0 || i >= len(p) {
		return Entry{}, fmt.Errorf("palette index %d out of range [0,%d)", i, len(p))
	}
	return p[i], nil
}

// IndexOf returns the index of the entry whose color equals c exactly, or -1.
func (p Palette) IndexOf(c imaging.Color) int {
	for _, e := range p {
		if e.Color == c {
			return e.Index
		}
	}
	return -1
}

// Lookup resolves a swatch by name ("red") or hex ("#FF0000"). A hex value
// must match a palette color exactly; arbitrary colors are not paintable.
func (p Palette) Lookup(s string) (Entry, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, e := range p {
		if e.Name == key {
			return e, nil
		}
	}

	c, err := imaging.ParseHex(key)
	if err != nil {
		return Entry{}, fmt.Errorf("unknown palette color %q", s)
	}
	if i := p.IndexOf(c); i >= 0 {
		return p[i], nil
	}
	return Entry{}, fmt.Errorf("color %s is not in the palette", c.Hex())
}

// Nearest returns the entry perceptually closest to c, measured in CIE Lab.
func (p Palette) Nearest(c imaging.Color) Entry {
	target := c.Colorful()
	best := p[0]
	bestDist := target.DistanceLab(best.Color.Colorful())
	for _, e := range p[1:] {
		if d := target.DistanceLab(e.Color.Colorful()); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}
