// Package coloring implements the map-coloring session controller.
//
// An Engine takes color-assignment requests (a seed pixel and a color),
// extracts the seed's region from the original map, checks the new region
// against every committed region of the same color, and either commits it or
// rejects the request with no side effects.
//
// # Outcomes
//
// Every request records an Outcome for the presentation layer:
//   - success: a region was painted and stored
//   - invalid_coordinate: the seed is outside the map (ignored on screen)
//   - region_too_small: fewer than the minimum pixels, usually a border line
//   - adjacent_color_conflict: a bordering region already uses the color
//
// The same information is returned as an error from AssignColor; use
// errors.Is with ErrInvalidCoordinate, ErrRegionTooSmall or ErrAdjacentColor,
// or errors.As with *ConflictError to get the blocking region id.
//
// # Usage
//
//	eng := coloring.NewEngine(source)
//	r, err := eng.AssignColor(imaging.Point{X: 120, Y: 80}, red)
//	if errors.Is(err, coloring.ErrAdjacentColor) {
//	    // show eng.LastOutcome().Warning()
//	}
package coloring
