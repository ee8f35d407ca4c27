package lane

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDrawer remembers every call instead of touching pixels.
type recordingDrawer struct {
	calls []drawCall
}

type drawCall struct {
	seg   Segment
	color color.Color
	width int
}

func (r *recordingDrawer) DrawLine(_ draw.Image, s Segment, c color.Color, width int) (bool, error) {
	r.calls = append(r.calls, drawCall{seg: s, color: c, width: width})
	return true, nil
}

func TestDrawSegments_Empty(t *testing.T) {
	img := blankFrame(40, 30, color.RGBA{12, 34, 56, 255})
	before := append([]uint8(nil), img.Pix...)

	r := NewRenderer(nil, 1)
	n, err := r.DrawSegments(img, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = r.DrawLanes(img, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = r.DrawLanes(img, []LanePair{})
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.True(t, bytes.Equal(before, img.Pix), "empty render changed pixels")
}

func TestDrawSegments_DefaultColor(t *testing.T) {
	img := blankFrame(50, 50, color.Black)
	r := NewRenderer(nil, 1)

	n, err := r.DrawSegments(img, []Segment{{5, 10, 45, 10}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, SegmentColor, img.RGBAAt(25, 10))
	assert.Equal(t, SegmentColor, img.RGBAAt(25, 11), "line width is 2")
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(25, 20))
}

func TestDrawSegments_OutOfRangeClipped(t *testing.T) {
	img := blankFrame(20, 20, color.Black)
	r := NewRenderer(nil, 1)

	n, err := r.DrawSegments(img, []Segment{{-100, 5, 500, 5}, {300, 300, 400, 400}}, color.White)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "the segment beyond the frame is not counted")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(0, 5))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(19, 5))
}

func TestDrawLanes_CountsVisibleMembers(t *testing.T) {
	img := blankFrame(20, 20, color.Black)
	r := NewRenderer(nil, 1)
	lanes := []LanePair{
		{Members: []LaneEntry{{Segment: Segment{0, 0, 19, 19}}, {Segment: Segment{-50, -50, -10, -10}}}},
		{Members: []LaneEntry{{Segment: Segment{0, 19, 19, 0}}}},
	}

	n, err := r.DrawLanes(img, lanes)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDrawLanes_ColorPerPair(t *testing.T) {
	rec := &recordingDrawer{}
	r := NewRenderer(rec, 42)
	lanes := []LanePair{
		{Members: []LaneEntry{{Segment: Segment{0, 0, 10, 10}}, {Segment: Segment{20, 0, 30, 10}}}},
		{Members: []LaneEntry{{Segment: Segment{40, 0, 50, 10}}}},
	}

	n, err := r.DrawLanes(image.NewRGBA(image.Rect(0, 0, 60, 20)), lanes)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, rec.calls, 3)

	assert.Equal(t, rec.calls[0].color, rec.calls[1].color, "members of one lane share a color")
	assert.NotEqual(t, rec.calls[0].color, rec.calls[2].color)
	for _, c := range rec.calls {
		assert.Equal(t, LineWidth, c.width)
	}
}

func TestDrawLanes_SeededColors(t *testing.T) {
	lanes := []LanePair{{Members: []LaneEntry{{Segment: Segment{0, 0, 10, 10}}}}}
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))

	a, b := &recordingDrawer{}, &recordingDrawer{}
	_, err := NewRenderer(a, 7).DrawLanes(dst, lanes)
	require.NoError(t, err)
	_, err = NewRenderer(b, 7).DrawLanes(dst, lanes)
	require.NoError(t, err)
	assert.Equal(t, a.calls[0].color, b.calls[0].color)
}

func TestRandomColor_Opaque(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		c := RandomColor(rng)
		assert.Equal(t, uint8(255), c.A)
		assert.False(t, c.R < 100 && c.G < 100 && c.B < 100, "color %v too dark", c)
	}
}

func TestRasterDrawer_NilDestination(t *testing.T) {
	ok, err := RasterDrawer{}.DrawLine(nil, Segment{0, 0, 1, 1}, color.White, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, ok)
}
