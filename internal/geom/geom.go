// Package geom holds the screen-space primitives shared by the input and
// picking packages. Coordinates are viewport pixels with Y growing downward.
package geom

import (
	"fmt"
	"math"
)

// Point is a screen coordinate.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Equal returns true if two points are equal.
func (p Point) Equal(other Point) bool {
	return p.X == other.X && p.Y == other.Y
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(other Point) float64 {
	d := p.Sub(other)
	return math.Hypot(float64(d.X), float64(d.Y))
}

// Exceeds reports whether other lies strictly farther than threshold pixels from p.
func (p Point) Exceeds(other Point, threshold float64) bool {
	return p.Distance(other) > threshold
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned screen rectangle. Min is inclusive, Max exclusive.
type Rect struct {
	Min Point
	Max Point
}

// RectBetween returns the normalized rectangle spanned by two corner points.
// The second corner is included, so a press and release on the same pixel
// still covers that pixel.
func RectBetween(a, b Point) Rect {
	r := Rect{Min: a, Max: b}.Canon()
	r.Max.X++
	r.Max.Y++
	return r
}

// XYWH builds a rectangle from origin and size.
func XYWH(x, y, w, h int) Rect {
	return Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

// Canon returns the rectangle with Min <= Max on both axes.
func (r Rect) Canon() Rect {
	if r.Max.X < r.Min.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Dx returns the width.
func (r Rect) Dx() int {
	return r.Max.X - r.Min.X
}

// Dy returns the height.
func (r Rect) Dy() int {
	return r.Max.Y - r.Min.Y
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Overlaps reports whether r and s share at least one pixel.
func (r Rect) Overlaps(s Rect) bool {
	return !r.Empty() && !s.Empty() &&
		r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// String returns "[(x0,y0)-(x1,y1))".
func (r Rect) String() string {
	return fmt.Sprintf("[%s-%s)", r.Min, r.Max)
}
