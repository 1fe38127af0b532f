package coloring

import (
	"fmt"

	"github.com/ironsheep/mapcolor-mcp/internal/imaging"
	"github.com/ironsheep/mapcolor-mcp/internal/region"
	"github.com/sirupsen/logrus"
)

// MinRegionPixels is the default minimum size of a paintable region.
// Anything smaller is treated as a click on a border or speck, not a region.
const MinRegionPixels = 5

// Engine is a single map-coloring session.
//
// It owns the immutable source map, the draw surface, and the store of
// committed regions. Every assignment is extracted from the source map, never
// from the draw surface, so earlier paint never changes what a later click
// selects.
//
// Engine is not safe for concurrent use; callers serialize requests.
type Engine struct {
	source    *imaging.Buffer
	draw      *imaging.Buffer
	store     *region.Store
	tolerance int
	minPixels int
	last      Outcome
	log       *logrus.Entry
}

// Option configures an Engine.
type Option func(*Engine)

// WithTolerance sets the per-channel flood-fill tolerance (default 30).
func WithTolerance(n int) Option {
	return func(e *Engine) { e.tolerance = n }
}

// WithMinRegionPixels sets the minimum region size (default 5).
func WithMinRegionPixels(n int) Option {
	return func(e *Engine) { e.minPixels = n }
}

// WithLogger sets the logger used for commit and rejection events.
func WithLogger(log *logrus.Entry) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine starts a session over source. The engine keeps its own copy of
// source, so later changes to the argument have no effect.
func NewEngine(source *imaging.Buffer, opts ...Option) *Engine {
	e := &Engine{
		source:    source.Clone(),
		store:     region.NewStore(),
		tolerance: region.DefaultTolerance,
		minPixels: MinRegionPixels,
		log:       logrus.WithField("component", "coloring"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.draw = e.source.Clone()
	return e
}

// AssignColor paints the region under seed with c if doing so keeps every
// pair of bordering regions differently colored.
//
// The steps are:
//  1. Reject seeds outside the map (ErrInvalidCoordinate).
//  2. Flood-fill the source map from seed with the engine tolerance.
//  3. Reject regions smaller than the minimum size (ErrRegionTooSmall).
//  4. Reject if any committed region of exactly the same color borders the
//     new one (*ConflictError, matching ErrAdjacentColor). Every record
//     counts, including ones later painted over: clicking a region again
//     with its own color conflicts with its earlier record.
//  5. Paint the draw surface, compute the centroid and commit.
//
// Steps 1-4 are read-only. On any error the draw surface and the store are
// exactly as they were before the call. The outcome is recorded either way
// and available from LastOutcome.
func (e *Engine) AssignColor(seed imaging.Point, c imaging.Color) (region.Region, error) {
	r, err := e.assign(seed, c)
	if err != nil {
		e.last = outcomeFromError(err)
		e.log.WithFields(logrus.Fields{
			"x":       seed.X,
			"y":       seed.Y,
			"color":   c.Hex(),
			"outcome": e.last.Kind.String(),
		}).Debug("Assignment rejected")
		return region.Region{}, err
	}

	e.last = Outcome{Kind: OutcomeSuccess, Region: &r}
	e.log.WithFields(logrus.Fields{
		"region": r.ID,
		"color":  c.Hex(),
		"pixels": r.Size(),
	}).Debug("Region committed")
	return r, nil
}

func (e *Engine) assign(seed imaging.Point, c imaging.Color) (region.Region, error) {
	if !e.source.InBounds(seed) {
		return region.Region{}, fmt.Errorf("%w: (%d,%d) outside %dx%d map: %w",
			ErrInvalidCoordinate, seed.X, seed.Y, e.source.Width(), e.source.Height(), imaging.ErrOutOfBounds)
	}

	pixels, err := region.Extract(e.source, seed, e.tolerance)
	if err != nil {
		return region.Region{}, fmt.Errorf("%w: %w", ErrInvalidCoordinate, err)
	}

	if pixels.Len() < e.minPixels {
		return region.Region{}, fmt.Errorf("%w: %d pixels at (%d,%d), need %d",
			ErrRegionTooSmall, pixels.Len(), seed.X, seed.Y, e.minPixels)
	}

	for _, other := range e.store.SameColor(c) {
		if region.Touches(pixels, other.Pixels) {
			return region.Region{}, &ConflictError{RegionID: other.ID}
		}
	}

	for p := range pixels {
		// pixels come from a same-sized buffer, so Set cannot fail
		_ = e.draw.Set(p, c)
	}
	return e.store.Append(c, pixels, region.Centroid(pixels)), nil
}

// Reset discards every committed region, restores the draw surface to the
// source map and clears the last outcome. Calling Reset repeatedly is
// harmless.
func (e *Engine) Reset() {
	e.draw = e.source.Clone()
	e.store.Reset()
	e.last = Outcome{}
	e.log.Debug("Session reset")
}

// ClearOutcome drops any pending warning without touching the map.
func (e *Engine) ClearOutcome() {
	e.last = Outcome{}
}

// LastOutcome returns the result of the most recent assignment.
func (e *Engine) LastOutcome() Outcome {
	return e.last
}

// DrawBuffer returns a copy of the current draw surface.
func (e *Engine) DrawBuffer() *imaging.Buffer {
	return e.draw.Clone()
}

// SourceBuffer returns a copy of the original map.
func (e *Engine) SourceBuffer() *imaging.Buffer {
	return e.source.Clone()
}

// Regions returns every committed region in id order, including regions
// that were later recolored.
func (e *Engine) Regions() []region.Region {
	return e.store.All()
}

// CurrentRegions returns the committed regions that still define the map's
// colors (see region.Store.Current).
func (e *Engine) CurrentRegions() []region.Region {
	return e.store.Current()
}

// Region looks up a committed region by id.
func (e *Engine) Region(id int) (region.Region, bool) {
	return e.store.Get(id)
}

// NextRegionID returns the id the next committed region will receive.
func (e *Engine) NextRegionID() int {
	return e.store.NextID()
}

// Tolerance returns the flood-fill tolerance in use.
func (e *Engine) Tolerance() int {
	return e.tolerance
}

// MinRegionPixels returns the minimum paintable region size in use.
func (e *Engine) MinRegionPixels() int {
	return e.minPixels
}

// Width returns the map width in pixels.
func (e *Engine) Width() int {
	return e.source.Width()
}

// Height returns the map height in pixels.
func (e *Engine) Height() int {
	return e.source.Height()
}
