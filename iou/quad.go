package iou

// Quad is a convex quadrilateral: the 4-vertex specialization used for rotated
// bounding boxes. Vertices are stored in clockwise order by convention; this is
// a caller-maintained invariant, enforced only where BeInSomeWise is called
// explicitly. All geometry delegates to the generic Polygon implementation.
type Quad [4]Point

// NewQuad creates a quadrilateral from four vertices, expected clockwise.
func NewQuad(p1, p2, p3, p4 Point) Quad {
	return Quad{p1, p2, p3, p4}
}

// Vertexes returns the quadrilateral as a generic polygon. The returned slice
// is a copy; mutating it does not affect the quad.
func (q Quad) Vertexes() Polygon {
	return Polygon{q[0], q[1], q[2], q[3]}
}

// Flip swaps the second and fourth vertices, reversing the winding order.
func (q *Quad) Flip() {
	q[1], q[3] = q[3], q[1]
}

// Area returns the quadrilateral's absolute area.
func (q Quad) Area() float64 {
	return q.Vertexes().Area()
}

// WhichWise returns the quadrilateral's winding order.
func (q Quad) WhichWise() WiseType {
	return q.Vertexes().WhichWise()
}

// IsInClockWise reports whether the vertices wind clockwise.
func (q Quad) IsInClockWise() bool {
	return q.WhichWise() == ClockWise
}

// IsInAntiClockWise reports whether the vertices wind anti-clockwise.
func (q Quad) IsInAntiClockWise() bool {
	return q.WhichWise() == AntiClockWise
}

// BeInSomeWise flips the quadrilateral in place so it winds in the given
// order. Degenerate quads are left unchanged.
func (q *Quad) BeInSomeWise(wise WiseType) {
	if wise == NoneWise {
		return
	}
	current := q.WhichWise()
	if current == NoneWise || current == wise {
		return
	}
	q.Flip()
}

// HasRepeatedVertex reports whether two consecutive vertices coincide within
// Epsilon.
func (q Quad) HasRepeatedVertex() bool {
	return q.Vertexes().HasRepeatedVertex()
}

// Location classifies p against the quadrilateral, which must wind clockwise.
func (q Quad) Location(p Point) LocPosition {
	return q.Vertexes().Location(p)
}

// InterPoints returns the crossings of the segment with the quadrilateral's
// boundary.
func (q Quad) InterPoints(line Line) []Point {
	return q.Vertexes().InterPoints(line)
}

// FindInnerPointsQuad is the quadrilateral form of FindInnerPoints.
func FindInnerPointsQuad(q1, q2 Quad) []Point {
	return FindInnerPoints(q1.Vertexes(), q2.Vertexes())
}

// FindInterPointsQuad is the quadrilateral form of FindInterPoints.
func FindInterPointsQuad(q1, q2 Quad) []Point {
	return FindInterPoints(q1.Vertexes(), q2.Vertexes())
}

// AreaIntersectionQuad is the quadrilateral form of AreaIntersection.
func AreaIntersectionQuad(q1, q2 Quad) float64 {
	return AreaIntersection(q1.Vertexes(), q2.Vertexes())
}

// AreaUnionQuad is the quadrilateral form of AreaUnion.
func AreaUnionQuad(q1, q2 Quad) float64 {
	return AreaUnion(q1.Vertexes(), q2.Vertexes())
}

// IoUQuad is the quadrilateral form of IoU.
func IoUQuad(q1, q2 Quad) (float64, error) {
	return IoU(q1.Vertexes(), q2.Vertexes())
}
