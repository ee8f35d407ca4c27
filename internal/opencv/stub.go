//go:build !gocv

package opencv

import "github.com/ironsheep/lane-tools-mcp/internal/lane"

// NewBackend reports ErrUnavailable in builds without the gocv tag.
func NewBackend() (lane.Backend, error) {
	return lane.Backend{}, ErrUnavailable
}

// Available reports whether the OpenCV backend is compiled in.
func Available() bool {
	return false
}
