package iou

import "math"

// WiseType describes the winding order of a polygon's vertex sequence.
type WiseType int

const (
	// NoneWise marks a degenerate vertex sequence (zero signed area within
	// Epsilon: collinear or empty).
	NoneWise WiseType = iota
	// ClockWise winding (negative signed area in the usual y-up convention).
	ClockWise
	// AntiClockWise winding (positive signed area).
	AntiClockWise
)

// LocPosition classifies a point against a convex polygon.
type LocPosition int

const (
	// OutSide of the polygon.
	OutSide LocPosition = iota
	// OnEdge of the polygon boundary.
	OnEdge
	// InSide the polygon interior.
	InSide
)

// Polygon is an ordered vertex sequence describing a simple convex polygon.
// The sequence is implicitly closed: the last vertex connects back to the
// first. Algorithms in this package treat it as read-only, with the single
// exception of BeInSomeWise which reverses the sequence in place.
type Polygon []Point

// SignedArea returns the shoelace sum over consecutive vertex pairs. The sign
// carries the winding: positive for anti-clockwise, negative for clockwise.
func (c Polygon) SignedArea() float64 {
	if len(c) < 3 {
		return 0
	}
	sum := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return sum / 2.0
}

// Area returns the absolute polygon area. It is winding-invariant, never
// negative and 0 for degenerate input.
func (c Polygon) Area() float64 {
	return math.Abs(c.SignedArea())
}

// WhichWise returns the polygon's winding order, or NoneWise when the signed
// area is within Epsilon of zero.
func (c Polygon) WhichWise() WiseType {
	sum := c.SignedArea()
	if sum > Epsilon {
		return AntiClockWise
	}
	if sum < -Epsilon {
		return ClockWise
	}
	return NoneWise
}

// BeInSomeWise reverses the vertex sequence in place so that the polygon winds
// in the given order. Degenerate polygons are left unchanged; normalizing them
// is a no-op, not an error.
func (c Polygon) BeInSomeWise(wise WiseType) {
	if wise == NoneWise {
		return
	}
	current := c.WhichWise()
	if current == NoneWise || current == wise {
		return
	}
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// HasRepeatedVertex reports whether two consecutive vertices (cyclically) are
// coordinate-equal within Epsilon. Repeated vertices are a defect in the input,
// detectable but not auto-repaired.
func (c Polygon) HasRepeatedVertex() bool {
	if len(c) < 2 {
		return false
	}
	for i := range c {
		j := (i + 1) % len(c)
		if c[i].Equal(c[j]) {
			return true
		}
	}
	return false
}

// Location classifies p against the polygon. The polygon must be convex and in
// clockwise winding (see BeInSomeWise); results on other input are unspecified.
//
// For every directed edge the cross product of the edge vector and the vector
// from the edge start to p is taken: any value beyond +Epsilon proves p outside
// and stops the scan, a value within Epsilon of zero puts p on that edge's
// line, and all-negative means strictly inside.
func (c Polygon) Location(p Point) LocPosition {
	if len(c) < 3 {
		return OutSide
	}
	onEdge := false
	for i := range c {
		j := (i + 1) % len(c)
		cross := c[j].Sub(c[i]).Cross(p.Sub(c[i]))
		if cross > Epsilon {
			return OutSide
		}
		if cross >= -Epsilon {
			onEdge = true
		}
	}
	if onEdge {
		return OnEdge
	}
	return InSide
}

// InterPoints returns the points where the given segment crosses the polygon
// boundary. Each crossing location appears once: points within Epsilon of an
// already collected one are suppressed, so a segment passing through a shared
// vertex does not report it per touching edge.
func (c Polygon) InterPoints(line Line) []Point {
	var pts []Point
	for i := range c {
		j := (i + 1) % len(c)
		edge := Line{P1: c[i], P2: c[j]}
		p, onSegments, ok := line.Intersection(edge)
		if !ok || !onSegments {
			continue
		}
		pts = appendPointDedup(pts, p)
	}
	return pts
}

// appendPointDedup appends p unless a point within Epsilon of it is already
// present.
func appendPointDedup(pts []Point, p Point) []Point {
	for i := range pts {
		if pts[i].Equal(p) {
			return pts
		}
	}
	return append(pts, p)
}
