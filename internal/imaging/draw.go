package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// DrawLine draws a straight line from (x1,y1) to (x2,y2) onto dst in place.
//
// The line is clipped to dst.Bounds() before rasterization, so coordinates
// outside the image are safe; a line lying entirely outside draws nothing.
// width is the stroke width in pixels (values below 1 are treated as 1); the
// extra pixels are laid perpendicular to the dominant axis of the line.
//
// Returns false when nothing was drawn.
func DrawLine(dst draw.Image, x1, y1, x2, y2 int, c color.Color, width int) bool {
	bounds := dst.Bounds()
	if bounds.Empty() {
		return false
	}
	if width < 1 {
		width = 1
	}

	fx1, fy1, fx2, fy2, ok := clipLine(bounds,
		float64(x1), float64(y1), float64(x2), float64(y2))
	if !ok {
		return false
	}
	ax, ay := int(math.Round(fx1)), int(math.Round(fy1))
	bx, by := int(math.Round(fx2)), int(math.Round(fy2))

	dx := absInt(bx - ax)
	dy := -absInt(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	steep := dx < -dy
	lo := -(width - 1) / 2
	hi := width / 2

	plot := func(x, y int) {
		for o := lo; o <= hi; o++ {
			px, py := x, y+o
			if steep {
				px, py = x+o, y
			}
			if (image.Point{X: px, Y: py}).In(bounds) {
				dst.Set(px, py, c)
			}
		}
	}

	// Bresenham
	err := dx + dy
	for {
		plot(ax, ay)
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
	return true
}

// LineVisible reports whether any part of the line from (x1,y1) to (x2,y2)
// falls inside r.
func LineVisible(r image.Rectangle, x1, y1, x2, y2 int) bool {
	if r.Empty() {
		return false
	}
	_, _, _, _, ok := clipLine(r, float64(x1), float64(y1), float64(x2), float64(y2))
	return ok
}

// clipLine clips a segment to the pixel centers of r using Liang-Barsky.
func clipLine(r image.Rectangle, x1, y1, x2, y2 float64) (float64, float64, float64, float64, bool) {
	minX, minY := float64(r.Min.X), float64(r.Min.Y)
	maxX, maxY := float64(r.Max.X-1), float64(r.Max.Y-1)

	dx := x2 - x1
	dy := y2 - y1
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, x1 - minX},
		{dx, maxX - x1},
		{-dy, y1 - minY},
		{dy, maxY - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}

	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
