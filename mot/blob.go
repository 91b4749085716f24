package mot

import (
	"github.com/google/uuid"

	"github.com/xychen9459/IoU/iou"
)

// Blob is the interface for tracked objects carrying rotated bounding boxes.
// Self is the concrete type implementing this interface (e.g., *SimpleBlob).
// This enables type-safe generic trackers.
type Blob[Self any] interface {
	// Identity
	GetID() uuid.UUID
	SetID(newID uuid.UUID)

	// Geometry
	GetCenter() iou.Point
	GetBBox() OrientedRect
	GetPredictedBBox() OrientedRect
	GetDiagonal() float64

	// Track history
	GetTrack() []iou.Point
	GetMaxTrackLen() int
	SetMaxTrackLen(newMaxTrackLen int)

	// Lifecycle
	Activate()
	Deactivate()

	// Match tracking
	GetNoMatchTimes() int
	IncNoMatch()
	ResetNoMatch()

	// Kalman operations
	PredictNextPosition()
	Update(measurement Self) error

	// Distance calculations
	DistanceTo(other Self) float64
	DistanceToPredicted(other Self) float64
}
