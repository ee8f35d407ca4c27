package lane

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/ironsheep/lane-tools-mcp/internal/detection"
	"github.com/ironsheep/lane-tools-mcp/internal/imaging"
)

// Fixed Hough resolution shared by every backend.
const (
	HoughRho       = 1.0
	HoughTheta     = math.Pi / 180
	HoughThreshold = 100
)

// EdgeDetector converts a color frame into a binary edge map of the same size.
type EdgeDetector interface {
	DetectEdges(img image.Image, p Params) (*imaging.EdgeMap, error)
}

// SegmentExtractor finds finite line segments in an edge map. Finding none is
// an empty result, not an error.
type SegmentExtractor interface {
	ExtractSegments(edges *imaging.EdgeMap, p Params) ([]Segment, error)
}

// LineDrawer rasterizes one segment onto dst in place. It reports false when
// the segment lies entirely outside dst and nothing was drawn.
type LineDrawer interface {
	DrawLine(dst draw.Image, s Segment, c color.Color, width int) (bool, error)
}

// Backend bundles the three vision capabilities the pipeline depends on.
type Backend struct {
	Name     string
	Edges    EdgeDetector
	Segments SegmentExtractor
	Drawer   LineDrawer
}

// DefaultBackend returns the pure Go backend: Canny from internal/imaging,
// progressive probabilistic Hough from internal/detection.
func DefaultBackend() Backend {
	return Backend{
		Name:     "go",
		Edges:    CannyDetector{},
		Segments: HoughExtractor{},
		Drawer:   RasterDrawer{},
	}
}

// CannyDetector adapts imaging.Canny.
type CannyDetector struct{}

func (CannyDetector) DetectEdges(img image.Image, p Params) (*imaging.EdgeMap, error) {
	edges, err := imaging.Canny(img, imaging.CannyParams{
		LowThreshold:  p.LowThreshold,
		HighThreshold: p.HighThreshold,
		ApertureSize:  p.ApertureSize,
		BlurRadius:    p.BlurRadius,
		L2Gradient:    p.L2Gradient,
	})
	if err != nil {
		if errors.Is(err, imaging.ErrInvalidImage) || errors.Is(err, imaging.ErrInvalidParams) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("edge detection failed: %w", err)
	}
	return edges, nil
}

// HoughExtractor adapts detection.HoughSegments.
type HoughExtractor struct {
	// Seed fixes the pixel visiting order; zero uses the detection default.
	Seed int64
}

func (h HoughExtractor) ExtractSegments(edges *imaging.EdgeMap, p Params) ([]Segment, error) {
	hp := detection.DefaultHoughParams()
	hp.Rho = HoughRho
	hp.Theta = HoughTheta
	hp.Threshold = HoughThreshold
	hp.MinLineLength = p.MinLineLength
	hp.MaxLineGap = p.MaxLineGap
	if h.Seed != 0 {
		hp.Seed = h.Seed
	}

	found, err := detection.HoughSegments(edges, hp)
	if err != nil {
		if errors.Is(err, detection.ErrInvalidParams) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("segment extraction failed: %w", err)
	}

	segs := make([]Segment, len(found))
	for i, s := range found {
		segs[i] = Segment(s)
	}
	return segs, nil
}

// RasterDrawer adapts imaging.DrawLine. Segments entirely outside dst draw
// nothing; partially visible ones are clipped.
type RasterDrawer struct{}

func (RasterDrawer) DrawLine(dst draw.Image, s Segment, c color.Color, width int) (bool, error) {
	if dst == nil {
		return false, fmt.Errorf("%w: nil destination image", ErrInvalidInput)
	}
	return imaging.DrawLine(dst, s.X1, s.Y1, s.X2, s.Y2, c, width), nil
}
