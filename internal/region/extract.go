package region

import (
	"github.com/ironsheep/mapcolor-mcp/internal/imaging"
)

// DefaultTolerance is the per-channel color distance below which a pixel is
// considered part of the seed's region.
const DefaultTolerance = 30

// neighbors are the 4-connected offsets: right, left, down, up.
var neighbors = [4]imaging.Point{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// Extract returns the maximal 4-connected set of pixels reachable from seed
// whose colors are all close to the seed's color.
//
// Parameters:
//   - buf: The buffer to read. It is never modified.
//   - seed: Starting coordinate.
//   - tolerance: Per-channel threshold; a pixel is accepted when every
//     channel differs from the seed color by strictly less than tolerance
//     (see imaging.Color.Close).
//
// Returns an error wrapping imaging.ErrOutOfBounds if seed is outside buf.
//
// # Algorithm
//
// Breadth-first traversal with a FIFO queue. A coordinate is marked visited
// the first time it is considered, whether or not it is accepted, so every
// pixel is tested at most once and the cost is O(pixels visited). Only
// up/down/left/right neighbors are followed; diagonal contact does not join
// two areas.
//
// A tolerance of zero or less rejects the seed itself and yields an empty
// set.
func Extract(buf *imaging.Buffer, seed imaging.Point, tolerance int) (PixelSet, error) {
	return NewExtractor(buf, tolerance).Extract(seed)
}

// Extractor runs repeated extractions over one buffer. Its visited marks are
// stamped with a per-call generation instead of being cleared, so each call
// costs only the pixels it touches rather than the whole buffer. Use it when
// flood-filling many seeds of the same map.
//
// An Extractor is not safe for concurrent use.
type Extractor struct {
	buf       *imaging.Buffer
	tolerance int
	marks     []uint32
	gen       uint32
	queue     []imaging.Point
}

// NewExtractor prepares extractions over buf with the given tolerance.
func NewExtractor(buf *imaging.Buffer, tolerance int) *Extractor {
	return &Extractor{
		buf:       buf,
		tolerance: tolerance,
		marks:     make([]uint32, buf.Width()*buf.Height()),
	}
}

// Extract behaves like the package-level Extract for the extractor's buffer
// and tolerance.
func (x *Extractor) Extract(seed imaging.Point) (PixelSet, error) {
	target, err := x.buf.At(seed)
	if err != nil {
		return nil, err
	}

	x.gen++
	if x.gen == 0 {
		// wrapped: old stamps could collide with the new generation
		for i := range x.marks {
			x.marks[i] = 0
		}
		x.gen = 1
	}

	width := x.buf.Width()
	pixels := NewPixelSet()
	queue := append(x.queue[:0], seed)
	x.marks[seed.Y*width+seed.X] = x.gen

	for head := 0; head < len(queue); head++ {
		p := queue[head]

		c, _ := x.buf.At(p) // queued points are always in bounds
		if !c.Close(target, x.tolerance) {
			continue
		}
		pixels.Add(p)

		for _, d := range neighbors {
			n := imaging.Point{X: p.X + d.X, Y: p.Y + d.Y}
			if !x.buf.InBounds(n) {
				continue
			}
			idx := n.Y*width + n.X
			if x.marks[idx] == x.gen {
				continue
			}
			x.marks[idx] = x.gen
			queue = append(queue, n)
		}
	}
	x.queue = queue

	return pixels, nil
}
