package iou

import (
	"math"
	"testing"
)

func clockwiseUnitQuad() Quad {
	return NewQuad(
		Point{X: 0, Y: 0},
		Point{X: 0, Y: 1},
		Point{X: 1, Y: 1},
		Point{X: 1, Y: 0},
	)
}

func TestQuadArea(t *testing.T) {
	q := clockwiseUnitQuad()
	if math.Abs(q.Area()-1.0) > eps {
		t.Errorf("Expected area 1, got %v", q.Area())
	}
}

func TestQuadWhichWise(t *testing.T) {
	q := clockwiseUnitQuad()
	if !q.IsInClockWise() {
		t.Error("Quad should be clockwise")
	}
	q.Flip()
	if !q.IsInAntiClockWise() {
		t.Error("Flipped quad should be anti-clockwise")
	}
	if math.Abs(q.Area()-1.0) > eps {
		t.Errorf("Flip must not change area, got %v", q.Area())
	}
}

func TestQuadBeInSomeWise(t *testing.T) {
	q := clockwiseUnitQuad()
	q.BeInSomeWise(AntiClockWise)
	if w := q.WhichWise(); w != AntiClockWise {
		t.Errorf("Expected AntiClockWise, got %v", w)
	}
	q.BeInSomeWise(AntiClockWise)
	if w := q.WhichWise(); w != AntiClockWise {
		t.Errorf("Normalization should be idempotent, got %v", w)
	}
}

func TestQuadLocation(t *testing.T) {
	q := clockwiseUnitQuad()
	if loc := q.Location(Point{X: 0.5, Y: 0.5}); loc != InSide {
		t.Errorf("Expected InSide, got %v", loc)
	}
	if loc := q.Location(Point{X: 5, Y: 5}); loc != OutSide {
		t.Errorf("Expected OutSide, got %v", loc)
	}
}

func TestQuadHasRepeatedVertex(t *testing.T) {
	q := NewQuad(
		Point{X: 0, Y: 0},
		Point{X: 0, Y: 0},
		Point{X: 1, Y: 1},
		Point{X: 1, Y: 0},
	)
	if !q.HasRepeatedVertex() {
		t.Error("Duplicate vertices should be detected")
	}
	if clockwiseUnitQuad().HasRepeatedVertex() {
		t.Error("Proper quad has no repeated vertices")
	}
}

func TestIoUQuad(t *testing.T) {
	q1 := clockwiseUnitQuad()
	q2 := NewQuad(
		Point{X: 0.5, Y: 0.5},
		Point{X: 0.5, Y: 1.5},
		Point{X: 1.5, Y: 1.5},
		Point{X: 1.5, Y: 0.5},
	)
	ratio, err := IoUQuad(q1, q2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(ratio-1.0/7.0) > eps {
		t.Errorf("Expected IoU 1/7, got %v", ratio)
	}
	if math.Abs(AreaIntersectionQuad(q1, q2)-0.25) > eps {
		t.Errorf("Expected intersection 0.25, got %v", AreaIntersectionQuad(q1, q2))
	}
	if math.Abs(AreaUnionQuad(q1, q2)-1.75) > eps {
		t.Errorf("Expected union 1.75, got %v", AreaUnionQuad(q1, q2))
	}
}

func TestIoUQuadRotated(t *testing.T) {
	// Unit square against a copy rotated 45 degrees about the shared center.
	// Intersection is a regular octagon with area 2*(sqrt(2)-1).
	q1 := clockwiseUnitQuad()
	s := math.Sqrt2 / 2
	q2 := NewQuad(
		Point{X: 0.5, Y: 0.5 - s},
		Point{X: 0.5 - s, Y: 0.5},
		Point{X: 0.5, Y: 0.5 + s},
		Point{X: 0.5 + s, Y: 0.5},
	)
	interWant := 2 * (math.Sqrt2 - 1)
	inter := AreaIntersectionQuad(q1, q2)
	if math.Abs(inter-interWant) > eps {
		t.Errorf("Expected octagon area %v, got %v", interWant, inter)
	}
	ratio, err := IoUQuad(q1, q2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := interWant / (2 - interWant)
	if math.Abs(ratio-want) > eps {
		t.Errorf("Expected IoU %v, got %v", want, ratio)
	}
}

func TestFindPointsQuad(t *testing.T) {
	q1 := clockwiseUnitQuad()
	q2 := NewQuad(
		Point{X: 0.5, Y: 0.5},
		Point{X: 0.5, Y: 1.5},
		Point{X: 1.5, Y: 1.5},
		Point{X: 1.5, Y: 0.5},
	)
	if pts := FindInnerPointsQuad(q1, q2); len(pts) != 2 {
		t.Errorf("Expected 2 inner points, got %v", pts)
	}
	if pts := FindInterPointsQuad(q1, q2); len(pts) != 2 {
		t.Errorf("Expected 2 crossings, got %v", pts)
	}
}
