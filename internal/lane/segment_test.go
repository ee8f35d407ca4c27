package lane

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlope(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want float64
	}{
		{"rising", Segment{0, 0, 10, 10}, 1},
		{"falling", Segment{0, 10, 10, 0}, -1},
		{"steep", Segment{2, 0, 4, 10}, 5},
		{"reversed endpoints", Segment{10, 10, 0, 0}, 1},
		{"horizontal", Segment{0, 5, 10, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Slope(tt.seg)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestSlope_Vertical(t *testing.T) {
	_, err := Slope(Segment{3, 0, 3, 50})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)

	var geo *GeometryError
	require.True(t, errors.As(err, &geo))
	assert.Equal(t, Vertical, geo.Kind)
	assert.Equal(t, Segment{3, 0, 3, 50}, geo.Segment)
}

func TestXIntercept(t *testing.T) {
	// y = 2x - 10 crosses y = 0 at x = 5
	x, err := XIntercept(Segment{10, 10, 20, 30})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, x, 1e-12)

	_, err = XIntercept(Segment{0, 7, 40, 7})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestFeaturize_RoundTrip(t *testing.T) {
	segs := []Segment{
		{0, 0, 99, 99},
		{0, 99, 99, 0},
		{12, 340, 210, 180},
		{400, 300, 620, 470},
		{5, 7, 6, 100},
	}

	for _, s := range segs {
		f, err := Featurize(s)
		require.NoError(t, err, "segment %v", s)
		require.Equal(t, Defined, f.Kind)

		// Rebuild the line from slope and intercept: y = m*(x - intercept).
		b := -f.Slope * f.Intercept
		assert.InDelta(t, float64(s.Y1), f.Slope*float64(s.X1)+b, 1e-9, "start of %v", s)
		assert.InDelta(t, float64(s.Y2), f.Slope*float64(s.X2)+b, 1e-9, "end of %v", s)
		assert.InDelta(t, 0, f.Slope*f.Intercept+b, 1e-9, "intercept of %v", s)
	}
}

func TestFeaturize_Degenerate(t *testing.T) {
	f, err := Featurize(Segment{10, 0, 10, 90})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	assert.Equal(t, Feature{Kind: Vertical}, f)

	f, err = Featurize(Segment{0, 40, 90, 40})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	assert.Equal(t, Feature{Kind: Horizontal}, f)
	assert.True(t, f.HasSlope())
}

func TestFeaturizeAll(t *testing.T) {
	segs := []Segment{
		{0, 0, 10, 10},
		{4, 0, 4, 10},
		{0, 3, 10, 3},
	}

	feats, err := FeaturizeAll(segs)
	require.NoError(t, err)
	require.Len(t, feats, 3)
	assert.Equal(t, Defined, feats[0].Kind)
	assert.Equal(t, Vertical, feats[1].Kind)
	assert.Equal(t, Horizontal, feats[2].Kind)
}

func TestFeaturizeAll_Empty(t *testing.T) {
	_, err := FeaturizeAll(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = FeaturizeAll([]Segment{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFeatureKind_String(t *testing.T) {
	assert.Equal(t, "defined", Defined.String())
	assert.Equal(t, "vertical", Vertical.String())
	assert.Equal(t, "horizontal", Horizontal.String())
	assert.Equal(t, "FeatureKind(7)", FeatureKind(7).String())

	text, err := Vertical.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "vertical", string(text))

	var k FeatureKind
	require.NoError(t, k.UnmarshalText([]byte("horizontal")))
	assert.Equal(t, Horizontal, k)
	assert.ErrorIs(t, k.UnmarshalText([]byte("diagonal")), ErrInvalidInput)
}

func TestGeometryError_Message(t *testing.T) {
	err := &GeometryError{Segment: Segment{1, 2, 1, 9}, Kind: Vertical}
	assert.Equal(t, "degenerate geometry: vertical segment (1,2)-(1,9)", err.Error())
}
