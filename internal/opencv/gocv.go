//go:build gocv

package opencv

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"gocv.io/x/gocv"

	"github.com/ironsheep/lane-tools-mcp/internal/imaging"
	"github.com/ironsheep/lane-tools-mcp/internal/lane"
)

// NewBackend returns the OpenCV edge detector, segment extractor and drawer.
func NewBackend() (lane.Backend, error) {
	return lane.Backend{
		Name:     Name,
		Edges:    EdgeDetector{},
		Segments: SegmentExtractor{},
		Drawer:   LineDrawer{},
	}, nil
}

// Available reports whether the OpenCV backend is compiled in.
func Available() bool {
	return true
}

// EdgeDetector runs cv::Canny on the grayscale frame.
type EdgeDetector struct{}

func (EdgeDetector) DetectEdges(img image.Image, p lane.Params) (*imaging.EdgeMap, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", lane.ErrInvalidInput)
	}
	switch p.ApertureSize {
	case 3, 5, 7:
	default:
		return nil, fmt.Errorf("%w: aperture size %d must be 3, 5 or 7", lane.ErrInvalidInput, p.ApertureSize)
	}

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lane.ErrInvalidInput, err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	if p.BlurRadius > 0 {
		k := int(p.BlurRadius*3)*2 + 1
		gocv.GaussianBlur(gray, &gray, image.Point{X: k, Y: k}, p.BlurRadius, p.BlurRadius, gocv.BorderDefault)
	}

	out := gocv.NewMat()
	defer out.Close()
	gocv.CannyWithParams(gray, &out, float32(p.LowThreshold), float32(p.HighThreshold), p.ApertureSize, p.L2Gradient)

	edges := imaging.NewEdgeMap(out.Cols(), out.Rows())
	edges.Origin = img.Bounds().Min
	copy(edges.Pix, out.ToBytes())
	return edges, nil
}

// SegmentExtractor runs cv::HoughLinesP with the shared resolution constants.
type SegmentExtractor struct{}

func (SegmentExtractor) ExtractSegments(edges *imaging.EdgeMap, p lane.Params) ([]lane.Segment, error) {
	segs := make([]lane.Segment, 0)
	if edges == nil {
		return segs, nil
	}
	if err := edges.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", lane.ErrInvalidInput, err)
	}
	if edges.Width == 0 || edges.Height == 0 {
		return segs, nil
	}

	src, err := gocv.NewMatFromBytes(edges.Height, edges.Width, gocv.MatTypeCV8U, edges.Pix)
	if err != nil {
		return nil, fmt.Errorf("edge map to mat: %w", err)
	}
	defer src.Close()

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(src, &lines, float32(lane.HoughRho), float32(lane.HoughTheta),
		lane.HoughThreshold, float32(p.MinLineLength), float32(p.MaxLineGap))

	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		segs = append(segs, lane.Segment{
			X1: int(v[0]) + edges.Origin.X,
			Y1: int(v[1]) + edges.Origin.Y,
			X2: int(v[2]) + edges.Origin.X,
			Y2: int(v[3]) + edges.Origin.Y,
		})
	}
	return segs, nil
}

// LineDrawer draws with cv::line and copies the result back into dst.
type LineDrawer struct{}

func (LineDrawer) DrawLine(dst draw.Image, s lane.Segment, c color.Color, width int) (bool, error) {
	if dst == nil {
		return false, fmt.Errorf("%w: nil destination image", lane.ErrInvalidInput)
	}
	b := dst.Bounds()
	if !imaging.LineVisible(b, s.X1, s.Y1, s.X2, s.Y2) {
		return false, nil
	}

	mat, err := gocv.ImageToMatRGB(dst)
	if err != nil {
		return false, fmt.Errorf("frame to mat: %w", err)
	}
	defer mat.Close()

	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	gocv.Line(&mat,
		image.Point{X: s.X1 - b.Min.X, Y: s.Y1 - b.Min.Y},
		image.Point{X: s.X2 - b.Min.X, Y: s.Y2 - b.Min.Y},
		rgba, width)

	out, err := mat.ToImage()
	if err != nil {
		return false, fmt.Errorf("mat to frame: %w", err)
	}
	draw.Draw(dst, b, out, image.Point{}, draw.Src)
	return true, nil
}
