// Package opencv provides a lane.Backend backed by OpenCV through gocv.
//
// The backend is compiled only with the gocv build tag, since it needs the
// OpenCV shared libraries at link time:
//
//	go build -tags gocv ./...
//
// Without the tag NewBackend returns ErrUnavailable and callers fall back to
// lane.DefaultBackend.
package opencv

import "errors"

// Name identifies this backend in configuration and logs.
const Name = "opencv"

// ErrUnavailable is returned when the binary was built without gocv.
var ErrUnavailable = errors.New("opencv backend not compiled in (build with -tags gocv)")
