package warp

import (
	"errors"
	"image"
	"math"
)

var (
	// ErrNoPoints is returned when corners are requested for an empty outline
	ErrNoPoints = errors.New("warp: no points")

	// ErrDegenerateQuad is returned when the four corners do not define a
	// perspective transform (collinear or coincident corners)
	ErrDegenerateQuad = errors.New("warp: degenerate quadrilateral")
)

// Quad holds the four corners of a table outline in source image space
type Quad struct {
	TopLeft     image.Point
	TopRight    image.Point
	BottomRight image.Point
	BottomLeft  image.Point
}

// Corners picks the four extreme points of an outline:
// top-left minimizes x+y, bottom-right maximizes x+y,
// top-right maximizes x-y and bottom-left minimizes x-y.
// Ties keep the earliest point.
func Corners(points []image.Point) (Quad, error) {
	if len(points) == 0 {
		return Quad{}, ErrNoPoints
	}
	q := Quad{points[0], points[0], points[0], points[0]}
	for _, p := range points[1:] {
		sum, diff := p.X+p.Y, p.X-p.Y
		if sum < q.TopLeft.X+q.TopLeft.Y {
			q.TopLeft = p
		}
		if sum > q.BottomRight.X+q.BottomRight.Y {
			q.BottomRight = p
		}
		if diff > q.TopRight.X-q.TopRight.Y {
			q.TopRight = p
		}
		if diff < q.BottomLeft.X-q.BottomLeft.Y {
			q.BottomLeft = p
		}
	}
	return q, nil
}

// Points returns the corners clockwise from top-left
func (q Quad) Points() [4]image.Point {
	return [4]image.Point{q.TopLeft, q.TopRight, q.BottomRight, q.BottomLeft}
}

// Size returns the output size of a rectified quad: the bottom edge length
// by the left edge length, rounded, plus one so the corner pixels
// themselves are kept.
func (q Quad) Size() (w, h int) {
	w = int(math.Round(dist(q.BottomLeft, q.BottomRight))) + 1
	h = int(math.Round(dist(q.TopLeft, q.BottomLeft))) + 1
	return w, h
}

func dist(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
