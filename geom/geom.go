// Package geom holds the small value types shared across the engine.
package geom

import (
	"image"
	"math"
)

// Point is a position in either screen or canvas space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales both coordinates by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Div divides both coordinates by k.
func (p Point) Div(k float64) Point { return Point{p.X / k, p.Y / k} }

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Round returns the nearest integer pixel.
func (p Point) Round() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// Size is a width and height.
type Size struct {
	W, H float64
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h float64) Size {
	return Size{W: w, H: h}
}
