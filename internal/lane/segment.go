package lane

import (
	"fmt"
)

// Segment is a finite line in image space given by its two endpoints.
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// FeatureKind tags which parts of a Feature are defined.
type FeatureKind int

const (
	// Defined means both Slope and Intercept are finite.
	Defined FeatureKind = iota

	// Vertical means x2 == x1: neither slope nor intercept exists.
	Vertical

	// Horizontal means slope == 0: Slope is 0 but the line never crosses
	// y = 0 (or lies on it), so Intercept is undefined.
	Horizontal
)

func (k FeatureKind) String() string {
	switch k {
	case Defined:
		return "defined"
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("FeatureKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k FeatureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *FeatureKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "defined":
		*k = Defined
	case "vertical":
		*k = Vertical
	case "horizontal":
		*k = Horizontal
	default:
		return fmt.Errorf("%w: unknown feature kind %q", ErrInvalidInput, text)
	}
	return nil
}

// Feature is the slope and x-intercept of one segment.
//
// Slope is meaningful for Defined and Horizontal kinds; Intercept only for
// Defined. Undefined fields are zero, never Inf or NaN.
type Feature struct {
	Kind      FeatureKind `json:"kind"`
	Slope     float64     `json:"slope"`
	Intercept float64     `json:"intercept"`
}

// HasSlope reports whether the feature carries a usable slope.
func (f Feature) HasSlope() bool {
	return f.Kind == Defined || f.Kind == Horizontal
}

// Slope returns (y2-y1)/(x2-x1).
func Slope(s Segment) (float64, error) {
	if s.X2 == s.X1 {
		return 0, &GeometryError{Segment: s, Kind: Vertical}
	}
	return float64(s.Y2-s.Y1) / float64(s.X2-s.X1), nil
}

// XIntercept returns the x-coordinate where the segment's infinite
// extension crosses y = 0: -(y1 - slope*x1) / slope.
func XIntercept(s Segment) (float64, error) {
	m, err := Slope(s)
	if err != nil {
		return 0, err
	}
	if m == 0 {
		return 0, &GeometryError{Segment: s, Kind: Horizontal}
	}
	b := float64(s.Y1) - m*float64(s.X1)
	return -b / m, nil
}

// Featurize computes the feature of a single segment.
//
// Vertical and horizontal segments return the matching marker Feature
// together with a *GeometryError; callers that only need the marker can
// inspect Kind and ignore the error.
func Featurize(s Segment) (Feature, error) {
	m, err := Slope(s)
	if err != nil {
		return Feature{Kind: Vertical}, err
	}
	x, err := XIntercept(s)
	if err != nil {
		return Feature{Kind: Horizontal, Slope: m}, err
	}
	return Feature{Kind: Defined, Slope: m, Intercept: x}, nil
}

// FeaturizeAll computes one Feature per segment, in input order.
//
// Degenerate segments are kept as marker features so the result stays
// index-aligned with segs. An empty collection is ErrInvalidInput.
func FeaturizeAll(segs []Segment) ([]Feature, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: no segments to featurize", ErrInvalidInput)
	}
	features := make([]Feature, len(segs))
	for i, s := range segs {
		// The marker is what we keep; the error only restates it.
		features[i], _ = Featurize(s)
	}
	return features, nil
}
