package region

import "github.com/ironsheep/mapcolor-mcp/internal/imaging"

// PixelSet is an unordered set of unique pixel coordinates.
//
// The zero value is not usable; create sets with NewPixelSet.
type PixelSet map[imaging.Point]struct{}

// NewPixelSet returns a set holding the given points.
func NewPixelSet(points ...imaging.Point) PixelSet {
	s := make(PixelSet, len(points))
	for _, p := range points {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts p into the set.
func (s PixelSet) Add(p imaging.Point) {
	s[p] = struct{}{}
}

// Contains reports whether p is in the set.
func (s PixelSet) Contains(p imaging.Point) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of points in the set.
func (s PixelSet) Len() int {
	return len(s)
}

// Equal reports whether both sets hold exactly the same points.
func (s PixelSet) Equal(other PixelSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}

// Bounds returns the smallest rectangle (inclusive top-left, exclusive
// bottom-right) enclosing every point. An empty set yields the zero Bounds.
func (s PixelSet) Bounds() Bounds {
	if len(s) == 0 {
		return Bounds{}
	}
	first := true
	var b Bounds
	for p := range s {
		if first {
			b = Bounds{X1: p.X, Y1: p.Y, X2: p.X + 1, Y2: p.Y + 1}
			first = false
			continue
		}
		if p.X < b.X1 {
			b.X1 = p.X
		}
		if p.Y < b.Y1 {
			b.Y1 = p.Y
		}
		if p.X+1 > b.X2 {
			b.X2 = p.X + 1
		}
		if p.Y+1 > b.Y2 {
			b.Y2 = p.Y + 1
		}
	}
	return b
}

// Bounds represents a rectangular bounding box in pixel coordinates.
//
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Centroid returns the component-wise integer average of the points,
// rounded down. The centroid of an empty set is (0,0).
func Centroid(s PixelSet) imaging.Point {
	if len(s) == 0 {
		return imaging.Point{}
	}
	var sx, sy int
	for p := range s {
		sx += p.X
		sy += p.Y
	}
	n := len(s)
	return imaging.Point{X: floorDiv(sx, n), Y: floorDiv(sy, n)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
