package contour

import (
	"image"
	"math"

	"github.com/tsawler/tablescan/model"
)

// Area returns the absolute polygon area of a closed contour using the
// shoelace formula. Points are pixel centers, so a filled w x h block
// traced on its boundary has area (w-1)*(h-1).
func Area(c Contour) float64 {
	if len(c) < 3 {
		return 0
	}
	var sum int
	for i, p := range c {
		q := c[(i+1)%len(c)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(float64(sum)) / 2
}

// BoundingRect returns the smallest rect covering every point, with both
// edges inclusive (a single point has width and height 1).
func BoundingRect(points []image.Point) model.Rect {
	if len(points) == 0 {
		return model.Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return model.NewRect(minX, minY, maxX-minX+1, maxY-minY+1)
}

// Approximate simplifies a polyline with the Douglas-Peucker algorithm.
// Every removed point lies within epsilon of the simplified outline. When
// closed is true the first and last points are joined and the curve is
// split at the point farthest from the first one before simplifying.
func Approximate(c Contour, epsilon float64, closed bool) Contour {
	n := len(c)
	if n < 3 {
		return append(Contour(nil), c...)
	}
	if !closed {
		keep := make([]bool, n)
		keep[0], keep[n-1] = true, true
		simplify(c, 0, n-1, epsilon, keep)
		return collect(c, keep)
	}

	far, best := 0, -1.0
	for i, p := range c {
		if d := sqDist(c[0], p); d > best {
			far, best = i, d
		}
	}
	if far == 0 {
		return Contour{c[0]}
	}

	// Close the loop so the second half ends back at the start
	ring := append(append(Contour(nil), c...), c[0])
	keep := make([]bool, len(ring))
	keep[0], keep[far], keep[n] = true, true, true
	simplify(ring, 0, far, epsilon, keep)
	simplify(ring, far, n, epsilon, keep)
	keep[n] = false
	return collect(ring, keep)
}

func simplify(c Contour, first, last int, epsilon float64, keep []bool) {
	if last-first < 2 {
		return
	}
	idx, dmax := -1, 0.0
	for i := first + 1; i < last; i++ {
		if d := segmentDistance(c[i], c[first], c[last]); d > dmax {
			idx, dmax = i, d
		}
	}
	if idx < 0 || dmax <= epsilon {
		return
	}
	keep[idx] = true
	simplify(c, first, idx, epsilon, keep)
	simplify(c, idx, last, epsilon, keep)
}

func collect(c Contour, keep []bool) Contour {
	var out Contour
	for i, k := range keep {
		if k {
			out = append(out, c[i])
		}
	}
	return out
}

// segmentDistance returns the distance from p to the segment a-b
func segmentDistance(p, a, b image.Point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	px, py := float64(p.X-a.X), float64(p.Y-a.Y)
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px, py)
	}
	t := math.Max(0, math.Min(1, (px*dx+py*dy)/l2))
	return math.Hypot(px-t*dx, py-t*dy)
}

func sqDist(a, b image.Point) float64 {
	dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
	return dx*dx + dy*dy
}

// CountComponents returns the number of 8-connected foreground components
// of mask restricted to the pixels of r. Components are split where they
// cross the edge of r.
func CountComponents(mask *image.Gray, r model.Rect) int {
	area := r.Image().Intersect(mask.Rect)
	if area.Empty() {
		return 0
	}
	w, h := area.Dx(), area.Dy()
	fg := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h &&
			mask.Pix[mask.PixOffset(area.Min.X+x, area.Min.Y+y)] != 0
	}

	visited := make([]bool, w*h)
	count := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || !fg(x, y) {
				continue
			}
			count++
			floodFill(x, y, w, h, fg, visited)
		}
	}
	return count
}
