// Package detection extracts straight line segments from binary edge maps.
//
// HoughSegments implements the progressive probabilistic Hough transform: edge
// pixels vote for (theta, rho) lines in random order, and as soon as one line
// collects enough votes it is traced along the edge map to find its endpoints.
// Traced pixels are consumed, so each edge pixel contributes to at most one
// segment.
//
// # Parameters
//
// Rho and Theta set the accumulator resolution. Threshold is the vote count
// that triggers tracing. MinLineLength and MaxLineGap decide which traced runs
// become segments and how far apart collinear fragments may be while still
// being merged.
//
// # Determinism
//
// The visiting order comes from a math/rand source seeded with
// HoughParams.Seed, so the same map and parameters always give the same
// segments in the same order.
//
// # Coordinate System
//
// Segment endpoints are in image coordinates: map-relative positions shifted
// by EdgeMap.Origin. Endpoint order within a segment follows the trace and
// carries no meaning.
//
// # Error Handling
//
// Only invalid parameters are errors (ErrInvalidParams). A nil or empty edge
// map, or one with no qualifying lines, yields an empty slice.
package detection
