package iou

import "math"

// Epsilon is the numeric tolerance used by every comparison against zero in this
// package: coordinate equality, collinearity, parallelism and winding tests.
const Epsilon = 1e-6

// Point is a 2D point (or vector, depending on context) with float64 coordinates.
// It is a plain value type and is freely copied.
type Point struct {
	X float64
	Y float64
}

// NewPoint creates a point from raw coordinates.
func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// At returns the i-th coordinate: 0 is X, 1 is Y.
// Panics on any other index.
func (p Point) At(i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	panic("iou: point index out of range")
}

// SetAt sets the i-th coordinate: 0 is X, 1 is Y.
func (p *Point) SetAt(i int, v float64) {
	switch i {
	case 0:
		p.X = v
	case 1:
		p.Y = v
	default:
		panic("iou: point index out of range")
	}
}

// IsZero reports whether both coordinates are within Epsilon of zero.
func (p Point) IsZero() bool {
	return math.Abs(p.X) <= Epsilon && math.Abs(p.Y) <= Epsilon
}

// Equal reports coordinate equality within Epsilon.
func (p Point) Equal(other Point) bool {
	return math.Abs(p.X-other.X) <= Epsilon && math.Abs(p.Y-other.Y) <= Epsilon
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns p scaled by t.
func (p Point) Scale(t float64) Point {
	return Point{X: p.X * t, Y: p.Y * t}
}

// Dot returns the dot product of p and other.
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Cross returns the z-component of the cross product of p and other.
// Positive when other lies counter-clockwise from p.
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - p.Y*other.X
}

// Norm returns the Euclidean length of p treated as a vector.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// NormSquared returns the squared Euclidean length of p.
func (p Point) NormSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(other Point) float64 {
	return p.Sub(other).Norm()
}

// Theta returns the polar angle of p about the origin, measured from the
// positive x axis, in [0, 2*Pi).
func (p Point) Theta() float64 {
	a := math.Atan2(p.Y, p.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
