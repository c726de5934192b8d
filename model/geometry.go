package model

import (
	"image"
	"math"
)

// Point represents a 2D point in image pixel coordinates (y grows downward)
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ImagePoint converts the point to an image.Point
func (p Point) ImagePoint() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// FromImagePoint converts an image.Point to a Point
func FromImagePoint(p image.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// Rect is an integer bounding box in image space.
type Rect struct {
	X      int // Left
	Y      int // Top
	Width  int
	Height int
}

// NewRect creates a rect from its origin and size
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromImage converts an image.Rectangle to a Rect
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Left returns the left edge X coordinate
func (r Rect) Left() int {
	return r.X
}

// Right returns the exclusive right edge X coordinate
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate
func (r Rect) Top() int {
	return r.Y
}

// Bottom returns the exclusive bottom edge Y coordinate
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Area returns the area of the rect
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Valid returns true if the rect has positive dimensions
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Image converts the rect to an image.Rectangle
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// CellBounds is the image-space rectangle of one logical table cell.
// All four edges are inclusive.
type CellBounds struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// BoundsFromCorners creates cell bounds spanning two diagonal corners.
// Each axis takes the min/max of the two points so the result is valid
// regardless of which corner is which.
func BoundsFromCorners(a, b Point) CellBounds {
	return CellBounds{
		Top:    min(a.Y, b.Y),
		Bottom: max(a.Y, b.Y),
		Left:   min(a.X, b.X),
		Right:  max(a.X, b.X),
	}
}

// Normalize returns bounds with Bottom >= Top and Right >= Left, swapping
// inverted edges instead of rejecting them.
func (c CellBounds) Normalize() CellBounds {
	if c.Bottom < c.Top {
		c.Top, c.Bottom = c.Bottom, c.Top
	}
	if c.Right < c.Left {
		c.Left, c.Right = c.Right, c.Left
	}
	return c
}

// Valid returns true if the bounds are not inverted
func (c CellBounds) Valid() bool {
	return c.Bottom >= c.Top && c.Right >= c.Left
}

// Width returns Right - Left
func (c CellBounds) Width() int {
	return c.Right - c.Left
}

// Height returns Bottom - Top
func (c CellBounds) Height() int {
	return c.Bottom - c.Top
}

// Contains checks whether a point lies inside the bounds, edges included
func (c CellBounds) Contains(x, y float64) bool {
	return x >= float64(c.Left) && x <= float64(c.Right) &&
		y >= float64(c.Top) && y <= float64(c.Bottom)
}

// Center returns the center of the bounds
func (c CellBounds) Center() (x, y float64) {
	return float64(c.Left+c.Right) / 2, float64(c.Top+c.Bottom) / 2
}

// Rect converts the bounds to a Rect covering the same pixels
func (c CellBounds) Rect() Rect {
	return Rect{X: c.Left, Y: c.Top, Width: c.Right - c.Left + 1, Height: c.Bottom - c.Top + 1}
}
