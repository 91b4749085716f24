package mot

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/xychen9459/IoU/iou"
)

// SimpleBlob is a tracked object using a 2D Kalman filter for the center
// position only; size and rotation angle are taken from the latest
// measurement. It implements Blob[*SimpleBlob].
type SimpleBlob struct {
	id                    uuid.UUID
	currentBBox           OrientedRect
	predictedNextPosition iou.Point
	track                 []iou.Point
	maxTrackLen           int
	active                bool
	noMatchTimes          int
	tracker               *kalman_filter.Kalman2D
}

// NewSimpleBlobWithTime creates a SimpleBlob with the specified time step.
func NewSimpleBlobWithTime(currentBbox OrientedRect, dt float64) *SimpleBlob {
	/* Kalman filter props */
	ux := 1.0
	uy := 1.0
	stdDevA := 2.0
	stdDevMx := 0.1
	stdDevMy := 0.1
	kf := kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(currentBbox.Cx, currentBbox.Cy))
	blob := SimpleBlob{
		id:                    uuid.New(),
		currentBBox:           currentBbox,
		predictedNextPosition: iou.Point{X: 0, Y: 0},
		track:                 make([]iou.Point, 0, 150),
		maxTrackLen:           150,
		active:                false,
		noMatchTimes:          0,
		tracker:               kf,
	}
	blob.track = append(blob.track, currentBbox.Center())
	return &blob
}

// NewSimpleBlob creates a SimpleBlob with the default time step of 1.0.
func NewSimpleBlob(currentBbox OrientedRect) *SimpleBlob {
	return NewSimpleBlobWithTime(currentBbox, 1.0)
}

// Activate activates blob
func (blob *SimpleBlob) Activate() {
	blob.active = true
}

// Deactivate deactivates blob
func (blob *SimpleBlob) Deactivate() {
	blob.active = false
}

// GetID returns blob's identifier
func (blob *SimpleBlob) GetID() uuid.UUID {
	return blob.id
}

// SetID sets blob's identifier
func (blob *SimpleBlob) SetID(newID uuid.UUID) {
	blob.id = newID
}

// GetCenter returns blob's current center
func (blob *SimpleBlob) GetCenter() iou.Point {
	return blob.currentBBox.Center()
}

// GetBBox returns blob's current bounding box
func (blob *SimpleBlob) GetBBox() OrientedRect {
	return blob.currentBBox
}

// GetPredictedBBox returns the bounding box re-centered on the predicted next
// position; size and angle are carried over unchanged.
func (blob *SimpleBlob) GetPredictedBBox() OrientedRect {
	return OrientedRect{
		Cx:     blob.predictedNextPosition.X,
		Cy:     blob.predictedNextPosition.Y,
		Width:  blob.currentBBox.Width,
		Height: blob.currentBBox.Height,
		Angle:  blob.currentBBox.Angle,
	}
}

// GetDiagonal returns blob's bounding box diagonal
func (blob *SimpleBlob) GetDiagonal() float64 {
	return blob.currentBBox.Diagonal()
}

// GetTrack returns blob's current track. Be careful: this is not copy of track, but reference to it
func (blob *SimpleBlob) GetTrack() []iou.Point {
	return blob.track
}

// GetMaxTrackLen returns blob's max track length
func (blob *SimpleBlob) GetMaxTrackLen() int {
	return blob.maxTrackLen
}

// SetMaxTrackLen sets blob's max track length
func (blob *SimpleBlob) SetMaxTrackLen(newMaxTrackLen int) {
	blob.maxTrackLen = newMaxTrackLen
}

// GetNoMatchTimes returns blob's no match times
func (blob *SimpleBlob) GetNoMatchTimes() int {
	return blob.noMatchTimes
}

// IncNoMatch increases blob's no match times
func (blob *SimpleBlob) IncNoMatch() {
	blob.noMatchTimes++
}

// ResetNoMatch resets blob's no match times
func (blob *SimpleBlob) ResetNoMatch() {
	blob.noMatchTimes = 0
}

// DistanceTo returns distance to other blob (center to center)
func (blob *SimpleBlob) DistanceTo(otherBlob *SimpleBlob) float64 {
	return euclideanDistance(blob.GetCenter(), otherBlob.GetCenter())
}

// DistanceToPredicted returns distance to other blob (predicted center to predicted center)
func (blob *SimpleBlob) DistanceToPredicted(otherBlob *SimpleBlob) float64 {
	return euclideanDistance(blob.predictedNextPosition, otherBlob.predictedNextPosition)
}

// PredictNextPosition executes the Kalman prediction step without re-evaluating
// the state vector against a measurement.
func (blob *SimpleBlob) PredictNextPosition() {
	blob.tracker.Predict()
	stateX, stateY := blob.tracker.GetState()
	blob.predictedNextPosition.X = stateX
	blob.predictedNextPosition.Y = stateY
}

// Update feeds the measured center into the Kalman filter and moves the box to
// the smoothed state. Size and angle are taken from the measurement as-is.
func (blob *SimpleBlob) Update(newBlob *SimpleBlob) error {
	measured := newBlob.currentBBox
	err := blob.tracker.Update(measured.Cx, measured.Cy)
	if err != nil {
		return errors.Wrap(err, "Can't update object tracker")
	}
	stateX, stateY := blob.tracker.GetState()
	blob.currentBBox = OrientedRect{
		Cx:     stateX,
		Cy:     stateY,
		Width:  measured.Width,
		Height: measured.Height,
		Angle:  measured.Angle,
	}
	blob.active = true
	blob.noMatchTimes = 0
	// Update track
	blob.track = append(blob.track, blob.currentBBox.Center())
	if len(blob.track) > blob.maxTrackLen {
		blob.track = blob.track[1:]
	}
	return nil
}
