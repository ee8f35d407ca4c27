package detection

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/ironsheep/lane-tools-mcp/internal/imaging"
)

// ErrInvalidParams is returned for out-of-range Hough parameters.
var ErrInvalidParams = errors.New("invalid hough parameters")

// Segment is a finite line segment in image coordinates.
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// HoughParams controls the progressive probabilistic Hough transform.
type HoughParams struct {
	// Rho is the distance resolution of the accumulator in pixels.
	Rho float64

	// Theta is the angle resolution of the accumulator in radians.
	Theta float64

	// Threshold is the minimum accumulator vote count for a line candidate.
	Threshold int

	// MinLineLength rejects segments whose extent along both x and y is
	// shorter than this many pixels.
	MinLineLength int

	// MaxLineGap is the largest run of missing pixels bridged while tracing
	// a segment.
	MaxLineGap int

	// MaxLines caps the number of returned segments (0 = unlimited).
	MaxLines int

	// Seed fixes the order in which edge pixels are visited.
	Seed int64
}

// DefaultHoughParams returns the lane detection defaults: 1 px and 1 degree
// resolution, 100 votes, 100 px minimum length, 10 px maximum gap.
func DefaultHoughParams() HoughParams {
	return HoughParams{
		Rho:           1,
		Theta:         math.Pi / 180,
		Threshold:     100,
		MinLineLength: 100,
		MaxLineGap:    10,
		Seed:          1,
	}
}

// Validate checks the parameter ranges.
func (p HoughParams) Validate() error {
	if p.Rho <= 0 || p.Theta <= 0 {
		return fmt.Errorf("%w: rho and theta must be positive", ErrInvalidParams)
	}
	if p.Threshold <= 0 {
		return fmt.Errorf("%w: threshold must be positive", ErrInvalidParams)
	}
	if p.MinLineLength < 0 || p.MaxLineGap < 0 || p.MaxLines < 0 {
		return fmt.Errorf("%w: lengths must be non-negative", ErrInvalidParams)
	}
	return nil
}

// fixed-point shift used when stepping along a line
const houghShift = 16

// HoughSegments extracts line segments from a binary edge map.
//
// The algorithm is the progressive probabilistic Hough transform:
//
//  1. Edge pixels are visited in a random order seeded by p.Seed.
//  2. Each visited pixel votes for every (theta, rho) line through it.
//  3. When a vote reaches p.Threshold, the line is traced in both directions
//     from the pixel, bridging gaps up to p.MaxLineGap, to find its endpoints.
//  4. Pixels on the traced segment are removed from further consideration;
//     if the segment is long enough their votes are withdrawn and the
//     segment is emitted.
//
// An edge map with no qualifying lines yields an empty slice, not an error.
// A map whose Pix length disagrees with its dimensions is rejected.
// Endpoints are translated by edges.Origin into image coordinates.
func HoughSegments(edges *imaging.EdgeMap, p HoughParams) ([]Segment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	segments := make([]Segment, 0)
	if edges == nil {
		return segments, nil
	}
	if err := edges.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if edges.Width == 0 || edges.Height == 0 {
		return segments, nil
	}

	width, height := edges.Width, edges.Height
	numAngle := int(math.Round(math.Pi / p.Theta))
	numRho := int(math.Round(float64((width+height)*2+1) / p.Rho))
	rhoOffset := (numRho - 1) / 2

	cosTab := make([]float64, numAngle)
	sinTab := make([]float64, numAngle)
	for n := 0; n < numAngle; n++ {
		ang := float64(n) * p.Theta
		cosTab[n] = math.Cos(ang) / p.Rho
		sinTab[n] = math.Sin(ang) / p.Rho
	}

	accumulator := make([]int, numAngle*numRho)
	mask := make([]bool, width*height)
	points := make([]int, 0, edges.Count())
	for idx, v := range edges.Pix {
		if v != 0 {
			mask[idx] = true
			points = append(points, idx)
		}
	}

	rhoIndex := func(n, x, y int) int {
		r := int(math.Round(float64(x)*cosTab[n] + float64(y)*sinTab[n]))
		return n*numRho + r + rhoOffset
	}

	rng := rand.New(rand.NewSource(p.Seed))

	for count := len(points); count > 0; count-- {
		// Pick a random remaining pixel and drop it from the pool.
		pick := rng.Intn(count)
		idx := points[pick]
		points[pick] = points[count-1]

		if !mask[idx] {
			continue
		}
		px, py := idx%width, idx/width

		maxVal := p.Threshold - 1
		maxN := 0
		for n := 0; n < numAngle; n++ {
			a := rhoIndex(n, px, py)
			accumulator[a]++
			if accumulator[a] > maxVal {
				maxVal = accumulator[a]
				maxN = n
			}
		}
		if maxVal < p.Threshold {
			continue
		}

		// Direction of the candidate line is perpendicular to its normal.
		a := -sinTab[maxN]
		b := cosTab[maxN]
		x0, y0 := px, py
		var dx0, dy0 int
		xflag := math.Abs(a) > math.Abs(b)
		if xflag {
			dx0 = 1
			if a <= 0 {
				dx0 = -1
			}
			dy0 = int(math.Round(b * (1 << houghShift) / math.Abs(a)))
			y0 = (y0 << houghShift) + (1 << (houghShift - 1))
		} else {
			dy0 = 1
			if b <= 0 {
				dy0 = -1
			}
			dx0 = int(math.Round(a * (1 << houghShift) / math.Abs(b)))
			x0 = (x0 << houghShift) + (1 << (houghShift - 1))
		}

		step := func(x, y int) (int, int) {
			if xflag {
				return x, y >> houghShift
			}
			return x >> houghShift, y
		}

		var ends [2][2]int
		for k := 0; k < 2; k++ {
			gap := 0
			x, y, dx, dy := x0, y0, dx0, dy0
			if k > 0 {
				dx, dy = -dx, -dy
			}
			for ; ; x, y = x+dx, y+dy {
				j1, i1 := step(x, y)
				if j1 < 0 || j1 >= width || i1 < 0 || i1 >= height {
					break
				}
				if mask[i1*width+j1] {
					gap = 0
					ends[k] = [2]int{j1, i1}
				} else {
					gap++
					if gap > p.MaxLineGap {
						break
					}
				}
			}
		}

		goodLine := absInt(ends[1][0]-ends[0][0]) >= p.MinLineLength ||
			absInt(ends[1][1]-ends[0][1]) >= p.MinLineLength

		// Clear the traced pixels; withdraw their votes when the line is kept.
		for k := 0; k < 2; k++ {
			x, y, dx, dy := x0, y0, dx0, dy0
			if k > 0 {
				dx, dy = -dx, -dy
			}
			for ; ; x, y = x+dx, y+dy {
				j1, i1 := step(x, y)
				if j1 < 0 || j1 >= width || i1 < 0 || i1 >= height {
					break
				}
				if mask[i1*width+j1] {
					if goodLine {
						for n := 0; n < numAngle; n++ {
							accumulator[rhoIndex(n, j1, i1)]--
						}
					}
					mask[i1*width+j1] = false
				}
				if j1 == ends[k][0] && i1 == ends[k][1] {
					break
				}
			}
		}

		if goodLine {
			segments = append(segments, Segment{
				X1: ends[0][0] + edges.Origin.X,
				Y1: ends[0][1] + edges.Origin.Y,
				X2: ends[1][0] + edges.Origin.X,
				Y2: ends[1][1] + edges.Origin.Y,
			})
			if p.MaxLines > 0 && len(segments) >= p.MaxLines {
				break
			}
		}
	}

	return segments, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
