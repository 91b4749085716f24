package iou

import "math"

// Line is a finite line segment between two points. Direction (which endpoint is
// first) matters only for the intersection arithmetic, not for what the segment
// represents.
type Line struct {
	P1 Point
	P2 Point
}

// NewLine creates a segment from two endpoints.
func NewLine(p1, p2 Point) Line {
	return Line{
		P1: p1,
		P2: p2,
	}
}

// Length returns the segment's length.
func (l Line) Length() float64 {
	return l.P1.DistanceTo(l.P2)
}

// Contains reports whether p lies on the segment: collinear with the endpoints
// within Epsilon and inside their bounding range (endpoints inclusive).
func (l Line) Contains(p Point) bool {
	d := l.P2.Sub(l.P1)
	if math.Abs(d.Cross(p.Sub(l.P1))) > Epsilon {
		return false
	}
	if p.X < math.Min(l.P1.X, l.P2.X)-Epsilon || p.X > math.Max(l.P1.X, l.P2.X)+Epsilon {
		return false
	}
	if p.Y < math.Min(l.P1.Y, l.P2.Y)-Epsilon || p.Y > math.Max(l.P1.Y, l.P2.Y)+Epsilon {
		return false
	}
	return true
}

// Intersection returns the point where the infinite lines through l and other
// cross. ok is false when the lines are parallel (including colinear overlap) -
// there is no single intersection point then. onSegments reports whether the
// returned point lies within both finite segments, which is the only case
// higher-level callers can actually use.
func (l Line) Intersection(other Line) (p Point, onSegments bool, ok bool) {
	d1 := l.P2.Sub(l.P1)
	d2 := other.P2.Sub(other.P1)
	denom := d1.Cross(d2)
	if math.Abs(denom) <= Epsilon {
		return Point{}, false, false
	}
	// Solve l.P1 + t*d1 = other.P1 + u*d2 for t.
	t := other.P1.Sub(l.P1).Cross(d2) / denom
	p = l.P1.Add(d1.Scale(t))
	onSegments = l.Contains(p) && other.Contains(p)
	return p, onSegments, true
}
