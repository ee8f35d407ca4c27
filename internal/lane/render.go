package lane

import (
	"fmt"
	"image/color"
	"image/draw"
	"math/rand"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// LineWidth is the stroke width of every rendered line.
const LineWidth = 2

// SegmentColor is the default color for raw segments.
var SegmentColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}

// Renderer draws segments and lane pairs onto caller-owned images.
type Renderer struct {
	drawer LineDrawer

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRenderer returns a renderer drawing through d. seed fixes the sequence
// of lane colors.
func NewRenderer(d LineDrawer, seed int64) *Renderer {
	if d == nil {
		d = RasterDrawer{}
	}
	return &Renderer{drawer: d, rng: rand.New(rand.NewSource(seed))}
}

// DrawSegments draws every segment in c, or SegmentColor when c is nil, and
// returns the number that touched dst. An empty collection leaves dst
// untouched.
func (r *Renderer) DrawSegments(dst draw.Image, segs []Segment, c color.Color) (int, error) {
	if c == nil {
		c = SegmentColor
	}
	drawn := 0
	for i, s := range segs {
		ok, err := r.drawer.DrawLine(dst, s, c, LineWidth)
		if err != nil {
			return drawn, fmt.Errorf("segment %d: %w", i, err)
		}
		if ok {
			drawn++
		}
	}
	return drawn, nil
}

// DrawLanes draws each lane pair in its own freshly sampled color and
// returns the number of member segments that touched dst.
func (r *Renderer) DrawLanes(dst draw.Image, lanes []LanePair) (int, error) {
	drawn := 0
	for i, pair := range lanes {
		c := r.nextColor()
		for _, m := range pair.Members {
			ok, err := r.drawer.DrawLine(dst, m.Segment, c, LineWidth)
			if err != nil {
				return drawn, fmt.Errorf("lane %d: %w", i, err)
			}
			if ok {
				drawn++
			}
		}
	}
	return drawn, nil
}

func (r *Renderer) nextColor() color.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RandomColor(r.rng)
}

// RandomColor samples a saturated, bright color so lanes stay readable on
// dark road frames.
func RandomColor(rng *rand.Rand) color.RGBA {
	c := colorful.Hsv(rng.Float64()*360, 0.6+rng.Float64()*0.4, 0.8+rng.Float64()*0.2).Clamped()
	red, green, blue := c.RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}
