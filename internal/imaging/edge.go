package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// ErrInvalidImage is returned when an image cannot be reduced to a
// single-channel intensity grid (nil image or empty bounds).
var ErrInvalidImage = errors.New("invalid image")

// ErrInvalidParams is returned for out-of-range edge detection parameters.
var ErrInvalidParams = errors.New("invalid edge detection parameters")

// EdgeMap is a binary edge image with the same dimensions as its source.
//
// Pixels are stored row-major, one byte each: 255 marks an edge, 0 marks a
// non-edge. Coordinates passed to At and Set are relative to the map (0-based);
// Origin holds the Min point of the source image bounds so consumers can
// translate results back into image space.
type EdgeMap struct {
	Width  int
	Height int
	Origin image.Point
	Pix    []uint8
}

// NewEdgeMap allocates an empty (all non-edge) map.
func NewEdgeMap(width, height int) *EdgeMap {
	return &EdgeMap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At reports whether (x, y) is an edge pixel. Out-of-range coordinates are
// never edges.
func (m *EdgeMap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] != 0
}

// Set marks or clears the edge pixel at (x, y). Out-of-range writes are ignored.
func (m *EdgeMap) Set(x, y int, edge bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	if edge {
		m.Pix[y*m.Width+x] = 255
	} else {
		m.Pix[y*m.Width+x] = 0
	}
}

// Validate checks that Pix holds exactly Width*Height pixels.
func (m *EdgeMap) Validate() error {
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("%w: negative edge map size %dx%d", ErrInvalidImage, m.Width, m.Height)
	}
	if len(m.Pix) != m.Width*m.Height {
		return fmt.Errorf("%w: edge map has %d pixels, want %dx%d",
			ErrInvalidImage, len(m.Pix), m.Width, m.Height)
	}
	return nil
}

// Count returns the number of edge pixels.
func (m *EdgeMap) Count() int {
	n := 0
	for _, p := range m.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// Gray renders the map as a grayscale image positioned at Origin.
func (m *EdgeMap) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height).Add(m.Origin))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			img.SetGray(x+m.Origin.X, y+m.Origin.Y, color.Gray{Y: m.Pix[y*m.Width+x]})
		}
	}
	return img
}

// CannyParams controls Canny edge detection.
type CannyParams struct {
	// LowThreshold discards gradient magnitudes below it. Typical value: 50.
	LowThreshold float64

	// HighThreshold keeps gradient magnitudes at or above it as strong edges.
	// Typical value: 150.
	HighThreshold float64

	// ApertureSize is the Sobel kernel size: 3, 5 or 7.
	ApertureSize int

	// BlurRadius applies a Gaussian pre-blur when greater than zero.
	BlurRadius float64

	// L2Gradient measures magnitude as sqrt(Gx² + Gy²) instead of the
	// default |Gx| + |Gy|.
	L2Gradient bool
}

// DefaultCannyParams returns the thresholds used for lane frames.
func DefaultCannyParams() CannyParams {
	return CannyParams{
		LowThreshold:  50,
		HighThreshold: 150,
		ApertureSize:  3,
	}
}

// Validate checks the parameter ranges.
func (p CannyParams) Validate() error {
	switch p.ApertureSize {
	case 3, 5, 7:
	default:
		return fmt.Errorf("%w: aperture size %d must be 3, 5 or 7", ErrInvalidParams, p.ApertureSize)
	}
	if p.LowThreshold < 0 || p.HighThreshold < 0 {
		return fmt.Errorf("%w: thresholds must be non-negative", ErrInvalidParams)
	}
	if p.LowThreshold > p.HighThreshold {
		return fmt.Errorf("%w: low threshold %.1f exceeds high threshold %.1f",
			ErrInvalidParams, p.LowThreshold, p.HighThreshold)
	}
	if p.BlurRadius < 0 {
		return fmt.Errorf("%w: blur radius must be non-negative", ErrInvalidParams)
	}
	return nil
}

// Canny performs Canny edge detection and returns a binary edge map.
//
// # Algorithm
//
//  1. Grayscale conversion using ITU-R BT.601 luminance weights
//  2. Optional Gaussian blur (BlurRadius > 0)
//  3. Sobel gradients at the requested aperture; magnitude = |Gx| + |Gy|, or
//     sqrt(Gx² + Gy²) with L2Gradient, computed on 0-255 intensities
//  4. Non-maximum suppression along the quantized gradient direction
//  5. Hysteresis: strong pixels (>= HighThreshold) seed edges, weak pixels
//     (>= LowThreshold) are kept when 8-connected to a seed
//
// Border pixels are never marked as edges.
func Canny(img image.Image, p CannyParams) (*EdgeMap, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty bounds %v", ErrInvalidImage, bounds)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	gray := intensity(img, p.BlurRadius)

	kx, ky := sobelKernels(p.ApertureSize)
	half := p.ApertureSize / 2

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for j := -half; j <= half; j++ {
				py := clamp(y+j, 0, height-1)
				for i := -half; i <= half; i++ {
					px := clamp(x+i, 0, width-1)
					v := gray[py*width+px]
					gx += v * kx[j+half][i+half]
					gy += v * ky[j+half][i+half]
				}
			}
			if p.L2Gradient {
				magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			} else {
				magnitude[y*width+x] = math.Abs(gx) + math.Abs(gy)
			}
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			idx := y*width + x
			angle := direction[idx]
			mag := magnitude[idx]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[idx-1]
				n2 = magnitude[idx+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[idx-width-1]
				n2 = magnitude[idx+width+1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[idx-width]
				n2 = magnitude[idx+width]
			} else {
				n1 = magnitude[idx-width+1]
				n2 = magnitude[idx+width-1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[idx] = mag
			}
		}
	}

	edges := NewEdgeMap(width, height)
	edges.Origin = bounds.Min

	// Seed from strong pixels and grow through weak ones.
	stack := make([]int, 0, 256)
	for idx, v := range suppressed {
		if v >= p.HighThreshold && v > 0 && edges.Pix[idx] == 0 {
			edges.Pix[idx] = 255
			stack = append(stack, idx)
		}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cx, cy := cur%width, cur/width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := cx+dx, cy+dy
					if nx < 0 || ny < 0 || nx >= width || ny >= height {
						continue
					}
					n := ny*width + nx
					if edges.Pix[n] == 0 && suppressed[n] >= p.LowThreshold && suppressed[n] > 0 {
						edges.Pix[n] = 255
						stack = append(stack, n)
					}
				}
			}
		}
	}

	return edges, nil
}

// intensity returns row-major 0-255 luminance values, blurred when radius > 0.
func intensity(img image.Image, radius float64) []float64 {
	var src image.Image = effect.GrayscaleWithWeights(img, 0.299, 0.587, 0.114)
	if radius > 0 {
		src = blur.Gaussian(src, radius)
	}

	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	out := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := src.At(x+b.Min.X, y+b.Min.Y).RGBA()
			out[y*width+x] = float64(r >> 8)
		}
	}
	return out
}

// sobelKernels builds the separable Sobel derivative kernels for an odd
// aperture. The smoothing row is the binomial row of that length; the
// derivative row is the binomial row two shorter convolved with [-1 0 1].
//
//	size 3: smooth [1 2 1]        deriv [-1 0 1]
//	size 5: smooth [1 4 6 4 1]    deriv [-1 -2 0 2 1]
func sobelKernels(size int) (kx, ky [][]float64) {
	smooth := binomial(size)
	deriv := convolve1D(binomial(size-2), []float64{-1, 0, 1})

	kx = make([][]float64, size)
	ky = make([][]float64, size)
	for j := 0; j < size; j++ {
		kx[j] = make([]float64, size)
		ky[j] = make([]float64, size)
		for i := 0; i < size; i++ {
			kx[j][i] = smooth[j] * deriv[i]
			ky[j][i] = deriv[j] * smooth[i]
		}
	}
	return kx, ky
}

func binomial(n int) []float64 {
	row := []float64{1}
	for len(row) < n {
		row = convolve1D(row, []float64{1, 1})
	}
	return row
}

func convolve1D(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
