// Package render draws the coloring screen for clients that cannot draw it
// themselves.
//
// The screen is the current draw surface with the palette swatch grid laid
// over its lower part, an instruction line, and a red warning line when the
// last request was rejected. Swatch rectangles double as hit areas: a click
// inside one selects that palette entry instead of painting the map. Maps
// shorter than MinPaletteHeight show no swatches, since the grid would cover
// most of them; clients pick colors by name there.
//
// Clients that read frames as images get a few inspection aids on top: a
// coordinate grid, named screen areas to crop to, and nearest-neighbor
// scaling.
package render
