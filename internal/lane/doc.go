// Package lane turns detected line segments into lane hypotheses.
//
// The chain is linear: a frame goes through an EdgeDetector, the edge map
// through a SegmentExtractor, each Segment is featurized into a slope and
// x-intercept, and PairLanes groups the segments into LanePairs. A Renderer
// draws segments or lanes back onto a frame through a LineDrawer.
//
// # Backends
//
// The three vision capabilities are interfaces bundled in a Backend.
// DefaultBackend is pure Go; internal/opencv provides a gocv one. Tests inject
// fakes so featurization and pairing can be checked on synthetic input.
//
// # Degenerate Geometry
//
// A vertical segment has no slope and a horizontal one has no x-intercept.
// Feature carries a Kind tag for these cases instead of Inf or NaN, and
// Slope, XIntercept and Featurize return a *GeometryError matching
// ErrDegenerateGeometry.
//
// # Pairing Limitations
//
// Pairing sorts by slope and chunks neighbors together. Nothing validates that
// two members of a pair are parallel, on opposite sides of the frame, or close
// to each other, so noisy frames produce nonsense pairs.
//
// # Navigation
//
// Choosing the nearest lane and a steering direction is not defined. Navigator
// takes a CenterSelector and a DirectionAdvisor; the built-in Unimplemented
// strategy fails with ErrUnimplemented.
package lane
