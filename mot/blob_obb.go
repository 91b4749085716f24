package mot

import (
	"math"

	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/xychen9459/IoU/iou"
)

// angleSmoothing is the blend factor applied to measured rotation angles:
// newAngle = old + angleSmoothing * shortestDiff(measured, old).
const angleSmoothing = 0.8

// OrientedBlob is a tracked object using an 8-D Kalman filter for the full box
// dynamics. State vector: [cx, cy, w, h, vx, vy, vw, vh]. The rotation angle is
// not part of the linear state; it is smoothed exponentially alongside.
// It implements Blob[*OrientedBlob].
type OrientedBlob struct {
	id            uuid.UUID
	currentBBox   OrientedRect
	predictedBBox OrientedRect
	track         []iou.Point
	maxTrackLen   int
	active        bool
	noMatchTimes  int
	tracker       *kalman_filter.KalmanBBox
}

// NewOrientedBlobWithTime creates a new OrientedBlob with specified time step.
func NewOrientedBlobWithTime(currentBbox OrientedRect, dt float64) *OrientedBlob {
	// Kalman filter props
	uCx := 1.0
	uCy := 1.0
	uW := 0.0
	uH := 0.0
	stdDevA := 2.0
	stdDevMCx := 0.1
	stdDevMCy := 0.1
	stdDevMW := 0.1
	stdDevMH := 0.1
	kf := kalman_filter.NewKalmanBBox(
		dt, uCx, uCy, uW, uH,
		stdDevA, stdDevMCx, stdDevMCy, stdDevMW, stdDevMH,
		kalman_filter.WithStateBBox(currentBbox.Cx, currentBbox.Cy, currentBbox.Width, currentBbox.Height),
	)

	blob := OrientedBlob{
		id:            uuid.New(),
		currentBBox:   currentBbox,
		predictedBBox: currentBbox,
		track:         make([]iou.Point, 0, 150),
		maxTrackLen:   150,
		active:        false,
		noMatchTimes:  0,
		tracker:       kf,
	}
	blob.track = append(blob.track, currentBbox.Center())
	return &blob
}

// NewOrientedBlob creates a new OrientedBlob with default time step of 1.0.
func NewOrientedBlob(currentBbox OrientedRect) *OrientedBlob {
	return NewOrientedBlobWithTime(currentBbox, 1.0)
}

// Activate activates blob
func (blob *OrientedBlob) Activate() {
	blob.active = true
}

// Deactivate deactivates blob
func (blob *OrientedBlob) Deactivate() {
	blob.active = false
}

// GetID returns blob's identifier
func (blob *OrientedBlob) GetID() uuid.UUID {
	return blob.id
}

// SetID sets blob's identifier
func (blob *OrientedBlob) SetID(newID uuid.UUID) {
	blob.id = newID
}

// GetCenter returns blob's current center
func (blob *OrientedBlob) GetCenter() iou.Point {
	return blob.currentBBox.Center()
}

// GetBBox returns blob's current bounding box
func (blob *OrientedBlob) GetBBox() OrientedRect {
	return blob.currentBBox
}

// GetPredictedBBox returns predicted bounding box from Kalman filter
func (blob *OrientedBlob) GetPredictedBBox() OrientedRect {
	return blob.predictedBBox
}

// GetDiagonal returns blob's bounding box diagonal
func (blob *OrientedBlob) GetDiagonal() float64 {
	return blob.currentBBox.Diagonal()
}

// GetTrack returns blob's current track. Be careful: this is not copy of track, but reference to it
func (blob *OrientedBlob) GetTrack() []iou.Point {
	return blob.track
}

// GetMaxTrackLen returns blob's max track length
func (blob *OrientedBlob) GetMaxTrackLen() int {
	return blob.maxTrackLen
}

// SetMaxTrackLen sets blob's max track length
func (blob *OrientedBlob) SetMaxTrackLen(newMaxTrackLen int) {
	blob.maxTrackLen = newMaxTrackLen
}

// GetNoMatchTimes returns blob's no match times
func (blob *OrientedBlob) GetNoMatchTimes() int {
	return blob.noMatchTimes
}

// IncNoMatch increases blob's no match times
func (blob *OrientedBlob) IncNoMatch() {
	blob.noMatchTimes++
}

// ResetNoMatch resets blob's no match times
func (blob *OrientedBlob) ResetNoMatch() {
	blob.noMatchTimes = 0
}

// DistanceTo returns distance to other blob (center to center)
func (blob *OrientedBlob) DistanceTo(otherBlob *OrientedBlob) float64 {
	return euclideanDistance(blob.GetCenter(), otherBlob.GetCenter())
}

// DistanceToPredicted returns distance to other blob (predicted center to predicted center)
func (blob *OrientedBlob) DistanceToPredicted(otherBlob *OrientedBlob) float64 {
	return euclideanDistance(blob.predictedBBox.Center(), otherBlob.predictedBBox.Center())
}

// PredictNextPosition executes Kalman filter prediction step
func (blob *OrientedBlob) PredictNextPosition() {
	blob.tracker.Predict()
	cx, cy, w, h := blob.tracker.GetState()
	blob.predictedBBox = OrientedRect{
		Cx:     cx,
		Cy:     cy,
		Width:  w,
		Height: h,
		Angle:  blob.currentBBox.Angle,
	}
}

// Update feeds the measured box into the Kalman filter, moves the box to the
// smoothed state and blends the rotation angle toward the measurement.
func (blob *OrientedBlob) Update(newBlob *OrientedBlob) error {
	measured := newBlob.currentBBox
	err := blob.tracker.Update(measured.Cx, measured.Cy, measured.Width, measured.Height)
	if err != nil {
		return errors.Wrap(err, "Can't update object tracker")
	}
	cx, cy, w, h := blob.tracker.GetState()
	blob.currentBBox = OrientedRect{
		Cx:     cx,
		Cy:     cy,
		Width:  w,
		Height: h,
		Angle:  blendAngle(blob.currentBBox.Angle, measured.Angle, angleSmoothing),
	}
	blob.active = true
	blob.noMatchTimes = 0
	// Update track with center position
	blob.track = append(blob.track, blob.currentBBox.Center())
	if len(blob.track) > blob.maxTrackLen {
		blob.track = blob.track[1:]
	}
	return nil
}

// GetVelocity returns current velocity estimates (vx, vy, vw, vh) from Kalman filter
func (blob *OrientedBlob) GetVelocity() (float64, float64, float64, float64) {
	return blob.tracker.GetVelocity()
}

// GetMahalanobisDistance returns the Mahalanobis distance to a measurement
func (blob *OrientedBlob) GetMahalanobisDistance(otherBlob *OrientedBlob) (float64, error) {
	otherBBox := otherBlob.currentBBox
	return blob.tracker.MahalanobisDistance(otherBBox.Cx, otherBBox.Cy, otherBBox.Width, otherBBox.Height)
}

// blendAngle moves angle a toward b by fraction t along the shortest arc, so
// measurements on either side of the +/-Pi seam do not flip the box.
func blendAngle(a, b, t float64) float64 {
	diff := math.Atan2(math.Sin(b-a), math.Cos(b-a))
	return a + diff*t
}
