package lane

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ironsheep/lane-tools-mcp/internal/imaging"
)

// LaneResult is the full analysis of one frame.
type LaneResult struct {
	Segments []Segment  `json:"segments"`
	Features []Feature  `json:"features"`
	Lanes    []LanePair `json:"lanes"`

	// Excluded lists vertical segments, which have no slope to sort by.
	Excluded []Segment `json:"excluded"`
}

// Detector runs the edge, segment, feature and pairing stages over a Backend.
// It holds no per-frame state and may be shared between goroutines as long as
// each call draws on its own image.
type Detector struct {
	backend  Backend
	renderer *Renderer
}

// NewDetector fills unset capabilities of b from DefaultBackend.
func NewDetector(b Backend) *Detector {
	def := DefaultBackend()
	if b.Name == "" {
		b.Name = def.Name
	}
	if b.Edges == nil {
		b.Edges = def.Edges
	}
	if b.Segments == nil {
		b.Segments = def.Segments
	}
	if b.Drawer == nil {
		b.Drawer = def.Drawer
	}
	return &Detector{backend: b, renderer: NewRenderer(b.Drawer, 1)}
}

// Backend returns the capabilities in use.
func (d *Detector) Backend() Backend {
	return d.backend
}

// DetectEdges returns the binary edge map of img.
func (d *Detector) DetectEdges(img image.Image, p Params) (*imaging.EdgeMap, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	return d.backend.Edges.DetectEdges(img, p)
}

// DetectSegments runs edge detection followed by segment extraction.
func (d *Detector) DetectSegments(img image.Image, p Params) ([]Segment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	edges, err := d.DetectEdges(img, p)
	if err != nil {
		return nil, err
	}
	if edges != nil {
		if err := edges.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s backend: %w", ErrInvalidInput, d.backend.Name, err)
		}
	}
	segs, err := d.backend.Segments.ExtractSegments(edges, p)
	if err != nil {
		return nil, err
	}
	if segs == nil {
		segs = []Segment{}
	}
	return segs, nil
}

// DetectLanes runs the whole chain. A frame with no segments yields an empty
// result, not an error.
func (d *Detector) DetectLanes(img image.Image, p Params) (*LaneResult, error) {
	segs, err := d.DetectSegments(img, p)
	if err != nil {
		return nil, err
	}
	return Analyze(segs)
}

// Analyze featurizes and pairs already-detected segments.
func Analyze(segs []Segment) (*LaneResult, error) {
	result := &LaneResult{
		Segments: segs,
		Features: []Feature{},
		Lanes:    []LanePair{},
		Excluded: []Segment{},
	}
	if len(segs) == 0 {
		return result, nil
	}

	feats, err := FeaturizeAll(segs)
	if err != nil {
		return nil, err
	}
	lanes, err := PairLanes(segs, feats)
	if err != nil {
		return nil, err
	}
	result.Features = feats
	result.Lanes = lanes
	result.Excluded = Excluded(segs, feats)
	return result, nil
}

// DrawSegments draws segs onto dst; a nil color means SegmentColor. It
// returns how many segments were visible in dst.
func (d *Detector) DrawSegments(dst draw.Image, segs []Segment, c color.Color) (int, error) {
	return d.renderer.DrawSegments(dst, segs, c)
}

// DrawLanes draws each pair onto dst in a random color and returns how many
// member segments were visible.
func (d *Detector) DrawLanes(dst draw.Image, lanes []LanePair) (int, error) {
	return d.renderer.DrawLanes(dst, lanes)
}
