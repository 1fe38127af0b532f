package coloring

import (
	"errors"

	"github.com/ironsheep/mapcolor-mcp/internal/region"
)

// OutcomeKind classifies the result of the last assignment request.
type OutcomeKind int

const (
	// OutcomeNone means no assignment has been attempted since the last
	// reset or warning clear.
	OutcomeNone OutcomeKind = iota
	OutcomeSuccess
	OutcomeInvalidCoordinate
	OutcomeRegionTooSmall
	OutcomeAdjacentConflict
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeNone:              "none",
	OutcomeSuccess:           "success",
	OutcomeInvalidCoordinate: "invalid_coordinate",
	OutcomeRegionTooSmall:    "region_too_small",
	OutcomeAdjacentConflict:  "adjacent_color_conflict",
}

func (k OutcomeKind) String() string {
	if s, ok := outcomeNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText renders the kind by name in JSON output.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the result of the most recent assignment request, kept for the
// presentation layer to render a transient warning.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Region is set on success.
	Region *region.Region `json:"region,omitempty"`

	// ConflictID is the blocking region's id on an adjacency conflict.
	ConflictID int `json:"conflict_id,omitempty"`

	// Detail is the underlying error text on failure.
	Detail string `json:"detail,omitempty"`
}

// Success reports whether the last assignment committed a region.
func (o Outcome) Success() bool {
	return o.Kind == OutcomeSuccess
}

// Warning returns the user-facing message for the outcome, or "" when there
// is nothing to show. Clicks outside the map are ignored silently.
func (o Outcome) Warning() string {
	switch o.Kind {
	case OutcomeRegionTooSmall:
		return "Click inside a valid region!"
	case OutcomeAdjacentConflict:
		return "Adjacent region already has this color!"
	default:
		return ""
	}
}

func outcomeFromError(err error) Outcome {
	o := Outcome{Detail: err.Error()}
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		o.Kind = OutcomeAdjacentConflict
		o.ConflictID = conflict.RegionID
	case errors.Is(err, ErrRegionTooSmall):
		o.Kind = OutcomeRegionTooSmall
	default:
		o.Kind = OutcomeInvalidCoordinate
	}
	return o
}
