// Package imaging provides the pixel-level building blocks of the map colorer.
//
// The central type is Buffer, an addressable grid of 8-bit RGB samples with
// bounds-checked reads and writes. A coloring session holds two of them: the
// source map, which is never written after load, and the draw surface that
// successful color assignments paint onto.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Valid coordinates satisfy 0 <= X < width and 0 <= Y < height
//
// # Color Representation
//
// Color is an exact RGB triple. Equality is struct equality. Similarity is a
// separate, tolerance-based relation (Color.Close) that compares each channel
// independently.
//
// # Loading
//
// Map images are decoded from PNG, JPEG or GIF through ImageCache and may be
// scaled to a fixed size on load. Scaling uses nearest-neighbor sampling so
// flat region fills stay flat.
//
// # Error Handling
//
// Out-of-range coordinates produce errors wrapping ErrOutOfBounds; check for
// them with errors.Is. File and decode failures are wrapped with context.
package imaging
