package region

import "github.com/ironsheep/mapcolor-mcp/internal/imaging"

// Touches reports whether some pixel of a has a 4-connected neighbor
// (up, down, left or right) in b.
//
// The result is symmetric. The larger set is used as the lookup side and the
// neighbors of the smaller set are checked against it. Diagonal contact does
// not count and a shared pixel alone is not a border. Overlapping sets of two
// or more connected pixels, such as a region and its own earlier record,
// always touch through their shared edges.
func Touches(a, b PixelSet) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	scan, lookup := a, b
	if len(scan) > len(lookup) {
		scan, lookup = lookup, scan
	}

	for p := range scan {
		for _, d := range neighbors {
			if lookup.Contains(imaging.Point{X: p.X + d.X, Y: p.Y + d.Y}) {
				return true
			}
		}
	}
	return false
}
