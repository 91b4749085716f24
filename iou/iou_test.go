package iou

import (
	"math"
	"testing"
)

func unitSquareAt(x, y float64) Polygon {
	return Polygon{
		{X: x, Y: y},
		{X: x, Y: y + 1},
		{X: x + 1, Y: y + 1},
		{X: x + 1, Y: y},
	}
}

func TestFindInnerPointsShiftedSquares(t *testing.T) {
	c1 := unitSquareAt(0, 0)
	c2 := unitSquareAt(0.5, 0.5)
	pts := FindInnerPoints(c1, c2)
	if len(pts) != 2 {
		t.Fatalf("Expected 2 inner points, got %d: %v", len(pts), pts)
	}
}

func TestFindInterPointsShiftedSquares(t *testing.T) {
	c1 := unitSquareAt(0, 0)
	c2 := unitSquareAt(0.5, 0.5)
	pts := FindInterPoints(c1, c2)
	if len(pts) != 2 {
		t.Fatalf("Expected 2 boundary crossings, got %d: %v", len(pts), pts)
	}
}

func TestIoUShiftedSquares(t *testing.T) {
	c1 := unitSquareAt(0, 0)
	c2 := unitSquareAt(0.5, 0.5)

	inter := AreaIntersection(c1, c2)
	if math.Abs(inter-0.25) > eps {
		t.Errorf("Expected intersection area 0.25, got %v", inter)
	}
	union := AreaUnion(c1, c2)
	if math.Abs(union-1.75) > eps {
		t.Errorf("Expected union area 1.75, got %v", union)
	}
	ratio, err := IoU(c1, c2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(ratio-1.0/7.0) > eps {
		t.Errorf("Expected IoU 1/7, got %v", ratio)
	}
}

func TestIoUIdentical(t *testing.T) {
	c := unitSquareAt(0, 0)
	ratio, err := IoU(c, c)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(ratio-1.0) > eps {
		t.Errorf("Expected IoU 1 for identical polygons, got %v", ratio)
	}
}

func TestIoUDisjoint(t *testing.T) {
	c1 := unitSquareAt(0, 0)
	c2 := unitSquareAt(3, 0)
	if inter := AreaIntersection(c1, c2); inter != 0 {
		t.Errorf("Expected intersection area 0, got %v", inter)
	}
	ratio, err := IoU(c1, c2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ratio != 0 {
		t.Errorf("Expected IoU 0 for disjoint polygons, got %v", ratio)
	}
}

func TestIoUTouchingSquares(t *testing.T) {
	// Shared edge, no shared area.
	c1 := unitSquareAt(0, 0)
	c2 := unitSquareAt(1, 0)
	if inter := AreaIntersection(c1, c2); inter != 0 {
		t.Errorf("Expected intersection area 0 for edge-touching squares, got %v", inter)
	}
	ratio, err := IoU(c1, c2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ratio != 0 {
		t.Errorf("Expected IoU 0, got %v", ratio)
	}
}

func TestIoUContainment(t *testing.T) {
	outer := Polygon{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 0}}
	inner := unitSquareAt(1, 1)
	interArea := AreaIntersection(outer, inner)
	if math.Abs(interArea-1.0) > eps {
		t.Errorf("Expected intersection equal to inner area 1, got %v", interArea)
	}
	ratio, err := IoU(outer, inner)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(ratio-1.0/16.0) > eps {
		t.Errorf("Expected IoU 1/16, got %v", ratio)
	}
}

func TestIoUSquareInsideDiamond(t *testing.T) {
	square := unitSquareAt(0, 0)
	// Diamond through all four square corners; the square is fully contained.
	diamond := Polygon{
		{X: 0.5, Y: -0.5},
		{X: -0.5, Y: 0.5},
		{X: 0.5, Y: 1.5},
		{X: 1.5, Y: 0.5},
	}
	inter := AreaIntersection(square, diamond)
	if math.Abs(inter-1.0) > eps {
		t.Errorf("Expected intersection 1 (square contained), got %v", inter)
	}
	ratio, err := IoU(square, diamond)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(ratio-0.5) > eps {
		t.Errorf("Expected IoU 0.5, got %v", ratio)
	}
}

func TestIoUSymmetry(t *testing.T) {
	c1 := unitSquareAt(0, 0)
	c2 := Polygon{
		{X: 0.2, Y: -0.3},
		{X: -0.1, Y: 0.8},
		{X: 0.9, Y: 1.1},
		{X: 1.3, Y: 0.1},
	}
	r12, err := IoU(c1, c2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r21, err := IoU(c2, c1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(r12-r21) > eps {
		t.Errorf("IoU must be symmetric: %v vs %v", r12, r21)
	}
}

func TestIoUWindingInvariance(t *testing.T) {
	cw := clockwiseUnitSquare()
	acw := antiClockwiseUnitSquare()
	shifted := unitSquareAt(0.5, 0.5)

	r1, err := IoU(cw, shifted)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r2, err := IoU(acw, shifted)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(r1-r2) > eps {
		t.Errorf("IoU must not depend on input winding: %v vs %v", r1, r2)
	}
}

func TestIoUDoesNotMutateInputs(t *testing.T) {
	acw := antiClockwiseUnitSquare()
	before := make(Polygon, len(acw))
	copy(before, acw)
	if _, err := IoU(acw, unitSquareAt(0.5, 0.5)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := range acw {
		if acw[i] != before[i] {
			t.Fatalf("IoU reordered caller's polygon at index %d", i)
		}
	}
}

func TestAreaUnionIdentity(t *testing.T) {
	c1 := unitSquareAt(0, 0)
	c2 := unitSquareAt(0.25, 0.5)
	want := c1.Area() + c2.Area() - AreaIntersection(c1, c2)
	if got := AreaUnion(c1, c2); math.Abs(got-want) > eps {
		t.Errorf("Union identity violated: expected %v, got %v", want, got)
	}
}

func TestIoUZeroUnion(t *testing.T) {
	degenerate1 := Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	degenerate2 := Polygon{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 3}}
	if _, err := IoU(degenerate1, degenerate2); err != ErrZeroUnionArea {
		t.Errorf("Expected ErrZeroUnionArea, got %v", err)
	}
}
