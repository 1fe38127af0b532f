package coloring

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinate is returned when the seed lies outside the map.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrRegionTooSmall is returned when the extracted region has fewer
	// pixels than the engine's minimum, typically a click on a border line.
	ErrRegionTooSmall = errors.New("region too small")

	// ErrAdjacentColor is returned when a bordering region already has the
	// requested color. The concrete error is a *ConflictError.
	ErrAdjacentColor = errors.New("adjacent region already has this color")
)

// ConflictError names the committed region that blocked an assignment.
type ConflictError struct {
	RegionID int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (region %d)", ErrAdjacentColor, e.RegionID)
}

// Is makes errors.Is(err, ErrAdjacentColor) true for conflicts.
func (e *ConflictError) Is(target error) bool {
	return target == ErrAdjacentColor
}
