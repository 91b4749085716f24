package mot

import (
	"math"

	"github.com/xychen9459/IoU/iou"
)

// OrientedRect is a rotated bounding box: center position, size and rotation
// angle in radians (counter-clockwise about the center). Angle 0 is an
// axis-aligned box.
type OrientedRect struct {
	Cx     float64
	Cy     float64
	Width  float64
	Height float64
	Angle  float64
}

// NewOrientedRect creates a rotated bounding box from center, size and angle.
func NewOrientedRect(cx, cy, width, height, angle float64) OrientedRect {
	return OrientedRect{
		Cx:     cx,
		Cy:     cy,
		Width:  width,
		Height: height,
		Angle:  angle,
	}
}

// NewAxisAlignedRect creates an unrotated box from its top-left corner and
// size, the layout most detectors emit.
func NewAxisAlignedRect(x, y, width, height float64) OrientedRect {
	return OrientedRect{
		Cx:     x + width/2.0,
		Cy:     y + height/2.0,
		Width:  width,
		Height: height,
	}
}

// Center returns the box center.
func (r OrientedRect) Center() iou.Point {
	return iou.Point{X: r.Cx, Y: r.Cy}
}

// Diagonal returns the box diagonal length. Rotation does not change it.
func (r OrientedRect) Diagonal() float64 {
	return math.Sqrt(r.Width*r.Width + r.Height*r.Height)
}

// Quad expands the box to its four corners in clockwise order.
func (r OrientedRect) Quad() iou.Quad {
	hw := r.Width / 2.0
	hh := r.Height / 2.0
	sin, cos := math.Sincos(r.Angle)
	corners := [4][2]float64{
		{-hw, -hh},
		{-hw, hh},
		{hw, hh},
		{hw, -hh},
	}
	var q iou.Quad
	for i, c := range corners {
		q[i] = iou.Point{
			X: r.Cx + c[0]*cos - c[1]*sin,
			Y: r.Cy + c[0]*sin + c[1]*cos,
		}
	}
	return q
}

// IoU calculates Intersection over Union between two rotated bounding boxes
// through the convex-quad pipeline. Two degenerate (zero-area) boxes score 0.
func IoU(r1, r2 OrientedRect) float64 {
	val, err := iou.IoUQuad(r1.Quad(), r2.Quad())
	if err != nil {
		return 0.0
	}
	return val
}

func euclideanDistance(p1, p2 iou.Point) float64 {
	return p1.DistanceTo(p2)
}
