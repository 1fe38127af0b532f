package region

import "github.com/ironsheep/mapcolor-mcp/internal/imaging"

// Region is a committed, colored, connected pixel set.
//
// A Region is immutable once created; the Pixels set must not be modified
// after it has been handed to a Store.
type Region struct {
	ID       int           `json:"id"`
	Color    imaging.Color `json:"color"`
	Pixels   PixelSet      `json:"-"`
	Centroid imaging.Point `json:"centroid"`
}

// Size returns the number of pixels in the region.
func (r Region) Size() int {
	return r.Pixels.Len()
}

// Store is the append-only collection of committed regions for one coloring
// session. Insertion order equals id order.
//
// Store is not safe for concurrent use.
type Store struct {
	regions []Region
	nextID  int
}

// NewStore creates an empty store whose first region gets id 1.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Append stores a new region and returns it with its assigned id.
func (s *Store) Append(color imaging.Color, pixels PixelSet, centroid imaging.Point) Region {
	r := Region{
		ID:       s.nextID,
		Color:    color,
		Pixels:   pixels,
		Centroid: centroid,
	}
	s.regions = append(s.regions, r)
	s.nextID++
	return r
}

// All returns the committed regions in insertion order. The returned slice
// is a copy; the regions' pixel sets are shared and must be treated as
// read-only.
func (s *Store) All() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Get returns the region with the given id.
func (s *Store) Get(id int) (Region, bool) {
	// ids are dense from 1 within a store lifetime
	i := id - 1
	if i < 0 || i >= len(s.regions) {
		return Region{}, false
	}
	return s.regions[i], true
}

// Len returns the number of committed regions.
func (s *Store) Len() int {
	return len(s.regions)
}

// NextID returns the id the next appended region will receive.
func (s *Store) NextID() int {
	return s.nextID
}

// SameColor returns every committed region whose color equals c exactly, in
// id order.
func (s *Store) SameColor(c imaging.Color) []Region {
	var out []Region
	for _, r := range s.regions {
		if r.Color == c {
			out = append(out, r)
		}
	}
	return out
}

// Current returns the committed regions that still define the map's colors,
// in id order. A region is superseded, and left out, when a later region
// covers exactly the same pixels. Current is for display; color conflicts
// are checked against every record (see SameColor).
func (s *Store) Current() []Region {
	out := make([]Region, 0, len(s.regions))
	for i, r := range s.regions {
		if !supersededBy(r, s.regions[i+1:]) {
			out = append(out, r)
		}
	}
	return out
}

func supersededBy(r Region, later []Region) bool {
	for _, l := range later {
		if l.Pixels.Equal(r.Pixels) {
			return true
		}
	}
	return false
}

// Reset removes every region and restarts ids at 1.
func (s *Store) Reset() {
	s.regions = nil
	s.nextID = 1
}
