package mot

import (
	"container/heap"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SimpleTracker is a naive implementation of a Multi-object tracker (MOT)
// matching detections to tracks by centroid distance.
// B is the blob type implementing Blob[B] interface.
type SimpleTracker[B Blob[B]] struct {
	// Main storage
	Objects map[uuid.UUID]B
	// Threshold distance (most of time in pixels). Default 30.0
	minDistThreshold float64
	// Max no match (max number of frames when object could not be found again). Default is 75
	maxNoMatch int
}

// NewSimpleTrackerDefault creates default instance of SimpleTracker
func NewSimpleTrackerDefault[B Blob[B]]() *SimpleTracker[B] {
	return &SimpleTracker[B]{
		Objects:          make(map[uuid.UUID]B),
		minDistThreshold: 30.0,
		maxNoMatch:       75,
	}
}

// NewSimpleTracker creates new instance of SimpleTracker
func NewSimpleTracker[B Blob[B]](minDistThreshold float64, maxNoMatch int) *SimpleTracker[B] {
	return &SimpleTracker[B]{
		Objects:          make(map[uuid.UUID]B),
		minDistThreshold: minDistThreshold,
		maxNoMatch:       maxNoMatch,
	}
}

// distanceBlob holds a detection with the distance to its nearest track.
type distanceBlob[B Blob[B]] struct {
	underlying B
	id         uuid.UUID
	distance   float64
}

// distanceHeap is a min-heap over match distances.
type distanceHeap[B Blob[B]] []*distanceBlob[B]

func (h distanceHeap[B]) Len() int           { return len(h) }
func (h distanceHeap[B]) Less(i, j int) bool { return h[i].distance < h[j].distance }
func (h distanceHeap[B]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *distanceHeap[B]) Push(x any) {
	*h = append(*h, x.(*distanceBlob[B]))
}

func (h *distanceHeap[B]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return item
}

// MatchObjects matches new detections to existing tracks by nearest centroid,
// processing candidate pairs in ascending distance order.
func (tracker *SimpleTracker[B]) MatchObjects(newObjects []B) error {
	for objectID := range tracker.Objects {
		// Make sure that object is marked as deactivated
		tracker.Objects[objectID].Deactivate()
		tracker.Objects[objectID].PredictNextPosition()
	}
	blobsToRegister := make(map[uuid.UUID]B)
	priorityQueue := &distanceHeap[B]{}
	heap.Init(priorityQueue)
	for i, newObject := range newObjects {
		minID := uuid.UUID{}
		minDistance := math.MaxFloat64
		for objectID, object := range tracker.Objects {
			dist := newObject.DistanceTo(object)
			distPredicted := newObject.DistanceToPredicted(object)
			distVerified := math.Min(dist, distPredicted)
			if distVerified < minDistance {
				minDistance = distVerified
				minID = objectID
			}
		}
		heap.Push(priorityQueue, &distanceBlob[B]{
			underlying: newObjects[i],
			distance:   minDistance,
			id:         minID,
		})
	}

	// We need to prevent double update of objects
	reservedObjects := make(map[uuid.UUID]struct{})

	for priorityQueue.Len() > 0 {
		blobPopped := heap.Pop(priorityQueue).(*distanceBlob[B])
		minDistance := blobPopped.distance
		minID := blobPopped.id
		underlyingBlob := blobPopped.underlying
		// Since candidates come off a min-heap, each existing object is
		// updated only by its closest detection. Later detections aiming at a
		// reserved object become new objects.
		if _, ok := reservedObjects[minID]; ok {
			blobsToRegister[underlyingBlob.GetID()] = underlyingBlob
			continue
		}
		// Additional check to filter objects
		if minDistance < underlyingBlob.GetDiagonal()*0.5 || minDistance < tracker.minDistThreshold {
			if _, ok := tracker.Objects[minID]; ok {
				err := tracker.Objects[minID].Update(underlyingBlob)
				if err != nil {
					return errors.Wrapf(err, "Can't update blob with id %s", minID.String())
				}
				// We need to update ID of new object to match existing one
				underlyingBlob.SetID(minID)
				reservedObjects[minID] = struct{}{}
			} else {
				blobsToRegister[underlyingBlob.GetID()] = underlyingBlob
			}
		} else {
			// Otherwise register object as a new one
			blobsToRegister[underlyingBlob.GetID()] = underlyingBlob
		}
	}

	for blobID := range blobsToRegister {
		tracker.Objects[blobID] = blobsToRegister[blobID]
	}

	// Clean up existing data
	for objectID := range tracker.Objects {
		tracker.Objects[objectID].IncNoMatch()
		// Remove object if it was not found for a long time
		if tracker.Objects[objectID].GetNoMatchTimes() > tracker.maxNoMatch {
			delete(tracker.Objects, objectID)
		}
	}
	return nil
}
