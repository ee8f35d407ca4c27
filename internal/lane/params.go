package lane

import "fmt"

// Params are the per-call tuning knobs for detection.
type Params struct {
	// LowThreshold and HighThreshold are the Canny hysteresis thresholds.
	LowThreshold  float64 `json:"low_threshold"`
	HighThreshold float64 `json:"high_threshold"`

	// ApertureSize is the Sobel kernel size (3, 5 or 7).
	ApertureSize int `json:"aperture_size"`

	// BlurRadius is an optional Gaussian pre-blur; 0 disables it.
	BlurRadius float64 `json:"blur_radius,omitempty"`

	// L2Gradient switches the Canny magnitude from |Gx|+|Gy| to the
	// Euclidean norm.
	L2Gradient bool `json:"l2_gradient,omitempty"`

	// MinLineLength is the shortest segment kept, in pixels.
	MinLineLength int `json:"min_line_length"`

	// MaxLineGap is the longest gap bridged between collinear fragments.
	MaxLineGap int `json:"max_line_gap"`
}

// DefaultParams returns 50/150 thresholds, aperture 3, 100 px minimum length
// and a 10 px maximum gap.
func DefaultParams() Params {
	return Params{
		LowThreshold:  50,
		HighThreshold: 150,
		ApertureSize:  3,
		MinLineLength: 100,
		MaxLineGap:    10,
	}
}

// Validate checks the segment parameters. Edge thresholds are checked by the
// edge detector, which knows the ranges it supports.
func (p Params) Validate() error {
	if p.MinLineLength < 0 {
		return fmt.Errorf("%w: min line length %d is negative", ErrInvalidInput, p.MinLineLength)
	}
	if p.MaxLineGap < 0 {
		return fmt.Errorf("%w: max line gap %d is negative", ErrInvalidInput, p.MaxLineGap)
	}
	return nil
}
