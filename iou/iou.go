package iou

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrZeroUnionArea is returned by IoU when both polygons are degenerate: the
// union area is zero and the ratio is undefined rather than infinite or NaN.
var ErrZeroUnionArea = errors.New("union area is zero, IoU is undefined")

// clockwiseCopy returns a clockwise-normalized copy so the caller's polygon is
// never reordered behind its back.
func clockwiseCopy(c Polygon) Polygon {
	cp := make(Polygon, len(c))
	copy(cp, c)
	cp.BeInSomeWise(ClockWise)
	return cp
}

// FindInnerPoints collects every vertex of c1 lying inside or on the boundary
// of c2 and, symmetrically, every vertex of c2 inside or on the boundary of c1.
// Points equal within Epsilon are collected once.
func FindInnerPoints(c1, c2 Polygon) []Point {
	a := clockwiseCopy(c1)
	b := clockwiseCopy(c2)
	var pts []Point
	for _, p := range a {
		if b.Location(p) != OutSide {
			pts = appendPointDedup(pts, p)
		}
	}
	for _, p := range b {
		if a.Location(p) != OutSide {
			pts = appendPointDedup(pts, p)
		}
	}
	return pts
}

// FindInterPoints collects the points where edges of c1 cross the boundary of
// c2. Scanning from one direction finds every true crossing; results are
// deduplicated within Epsilon.
func FindInterPoints(c1, c2 Polygon) []Point {
	var pts []Point
	for i := range c1 {
		j := (i + 1) % len(c1)
		edge := Line{P1: c1[i], P2: c1[j]}
		for _, p := range c2.InterPoints(edge) {
			pts = appendPointDedup(pts, p)
		}
	}
	return pts
}

// sortAroundCentroid orders pts by polar angle about their arithmetic mean.
// The intersection of two convex regions is convex, so angular order about any
// interior point is the correct boundary traversal order.
func sortAroundCentroid(pts []Point) {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	centroid := Point{X: cx / float64(len(pts)), Y: cy / float64(len(pts))}
	sort.Slice(pts, func(i, j int) bool {
		return pts[i].Sub(centroid).Theta() < pts[j].Sub(centroid).Theta()
	})
}

// AreaIntersection computes the area of the intersection of two convex
// polygons: inner vertices of each polygon in the other plus all boundary
// crossings, deduplicated, sorted angularly about their centroid and fed to the
// shoelace formula. Fewer than 3 candidate points means the intersection is
// empty or degenerates to a point or segment, with area 0.
func AreaIntersection(c1, c2 Polygon) float64 {
	if len(c1) < 3 || len(c2) < 3 {
		return 0
	}
	pts := FindInnerPoints(c1, c2)
	for _, p := range FindInterPoints(c1, c2) {
		pts = appendPointDedup(pts, p)
	}
	if len(pts) < 3 {
		return 0
	}
	sortAroundCentroid(pts)
	return Polygon(pts).Area()
}

// AreaUnion computes the union area by inclusion-exclusion. Floating error can
// push the exact expression slightly negative for near-degenerate input, so the
// result is floored at 0.
func AreaUnion(c1, c2 Polygon) float64 {
	u := c1.Area() + c2.Area() - AreaIntersection(c1, c2)
	if u < 0 {
		return 0
	}
	return u
}

// IoU returns the Intersection over Union ratio for two convex polygons.
// A union area within Epsilon of zero (two degenerate polygons) returns
// ErrZeroUnionArea.
func IoU(c1, c2 Polygon) (float64, error) {
	inter := AreaIntersection(c1, c2)
	union := c1.Area() + c2.Area() - inter
	if union <= Epsilon {
		return 0, ErrZeroUnionArea
	}
	return inter / union, nil
}
