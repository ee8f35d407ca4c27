package lane

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a malformed argument: an image that cannot be
	// reduced to intensity, an empty segment collection, mismatched inputs, or
	// out-of-range parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateGeometry reports a vertical or horizontal segment reaching
	// a division that is undefined for it.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrUnimplemented is returned by navigation strategies that have not
	// been provided.
	ErrUnimplemented = errors.New("unimplemented")
)

// GeometryError describes which segment made a derived quantity undefined.
type GeometryError struct {
	Segment Segment
	Kind    FeatureKind
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: %s segment (%d,%d)-(%d,%d)", ErrDegenerateGeometry, e.Kind,
		e.Segment.X1, e.Segment.Y1, e.Segment.X2, e.Segment.Y2)
}

// Unwrap lets errors.Is match ErrDegenerateGeometry.
func (e *GeometryError) Unwrap() error {
	return ErrDegenerateGeometry
}
