package mot

import (
	"fmt"

	"github.com/arthurkushman/go-hungarian"
	"github.com/google/uuid"
)

// MatchingAlgorithm selects how detections are assigned to tracks.
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmHungarian uses the Hungarian algorithm (Kuhn-Munkres) for optimal assignment
	MatchingAlgorithmHungarian MatchingAlgorithm = iota
	// MatchingAlgorithmGreedy uses a greedy algorithm for faster but potentially suboptimal assignment
	MatchingAlgorithmGreedy
)

// ByteTracker is an implementation of the ByteTrack multi-object tracker over
// rotated bounding boxes: detections are split by confidence and associated in
// two stages against the tracks' predicted boxes.
// B is the blob type implementing Blob[B] interface.
type ByteTracker[B Blob[B]] struct {
	// Maximum number of frames an object can be missing before it is removed
	maxDisappeared int
	// Minimum IoU between a detection and a predicted track box to accept a match
	minIoU float64
	// High detection confidence threshold
	highThresh float64
	// Low detection confidence threshold
	lowThresh float64
	// Algorithm to use for matching
	algorithm MatchingAlgorithm
	// Main storage
	Objects map[uuid.UUID]B
}

// DefaultByteTracker creates a ByteTracker with default parameters.
func DefaultByteTracker[B Blob[B]]() *ByteTracker[B] {
	return &ByteTracker[B]{
		maxDisappeared: 5,
		minIoU:         0.3,
		highThresh:     0.5,
		lowThresh:      0.3,
		algorithm:      MatchingAlgorithmHungarian,
		Objects:        make(map[uuid.UUID]B),
	}
}

// NewByteTracker creates a new instance of ByteTracker with specified parameters.
func NewByteTracker[B Blob[B]](maxDisappeared int, minIoU, highThresh, lowThresh float64, algorithm MatchingAlgorithm) *ByteTracker[B] {
	return &ByteTracker[B]{
		maxDisappeared: maxDisappeared,
		minIoU:         minIoU,
		highThresh:     highThresh,
		lowThresh:      lowThresh,
		algorithm:      algorithm,
		Objects:        make(map[uuid.UUID]B),
	}
}

// trackBox pairs a track ID with its predicted rotated box for one stage.
type trackBox struct {
	ID   uuid.UUID
	BBox OrientedRect
}

// MatchObjects matches objects in the current frame with existing tracks.
// Detections are []B and confidences are []float64.
func (bt *ByteTracker[B]) MatchObjects(detections []B, confidences []float64) error {
	if len(detections) != len(confidences) {
		return fmt.Errorf("detections and confidences arrays must have the same length. Conf array size: %d. Detections array size: %d",
			len(confidences), len(detections))
	}

	// Predict next positions for all existing tracks via Kalman filter
	for _, track := range bt.Objects {
		track.PredictNextPosition()
	}

	// Get active tracks
	activeTracks := make([]trackBox, 0, len(bt.Objects))
	for id, track := range bt.Objects {
		if track.GetNoMatchTimes() < bt.maxDisappeared {
			activeTracks = append(activeTracks, trackBox{
				ID:   id,
				BBox: track.GetPredictedBBox(),
			})
		}
	}

	matchedTracks := make(map[uuid.UUID]struct{})
	matchedDetections := make(map[int]struct{})

	// 1. First stage: match high confidence detections
	highDetectionIndices := make([]int, 0)
	for i, conf := range confidences {
		if conf >= bt.highThresh {
			highDetectionIndices = append(highDetectionIndices, i)
		}
	}
	if len(activeTracks) > 0 && len(highDetectionIndices) > 0 {
		iouMatrix := bt.createIoUMatrix(activeTracks, highDetectionIndices, detections)
		matches := bt.performMatching(iouMatrix, activeTracks, highDetectionIndices)
		err := bt.processMatches(matches, activeTracks, highDetectionIndices, iouMatrix, detections, matchedTracks, matchedDetections)
		if err != nil {
			return fmt.Errorf("error processing matches in stage 1: %w", err)
		}
	}

	// 2. Second stage: match low confidence detections with remaining tracks
	unmatchedTracks := make([]trackBox, 0)
	for _, tb := range activeTracks {
		if _, found := matchedTracks[tb.ID]; !found {
			if track, ok := bt.Objects[tb.ID]; ok {
				unmatchedTracks = append(unmatchedTracks, trackBox{
					ID:   tb.ID,
					BBox: track.GetPredictedBBox(),
				})
			}
		}
	}
	lowDetectionIndices := make([]int, 0)
	for i, conf := range confidences {
		// Only consider detections not already matched
		if _, found := matchedDetections[i]; !found {
			if conf < bt.highThresh && conf >= bt.lowThresh {
				lowDetectionIndices = append(lowDetectionIndices, i)
			}
		}
	}
	if len(unmatchedTracks) > 0 && len(lowDetectionIndices) > 0 {
		iouMatrix := bt.createIoUMatrix(unmatchedTracks, lowDetectionIndices, detections)
		matches := bt.performMatching(iouMatrix, unmatchedTracks, lowDetectionIndices)
		err := bt.processMatches(matches, unmatchedTracks, lowDetectionIndices, iouMatrix, detections, matchedTracks, matchedDetections)
		if err != nil {
			return fmt.Errorf("error processing matches in stage 2: %w", err)
		}
	}

	// 3. Add new tracks for unmatched high confidence detections
	for _, detIdx := range highDetectionIndices {
		if _, found := matchedDetections[detIdx]; !found {
			newBlob := detections[detIdx]
			newBlob.Activate()
			bt.Objects[newBlob.GetID()] = newBlob
		}
	}

	// 4. Increment no_match_times for unmatched tracks
	for id, track := range bt.Objects {
		if _, found := matchedTracks[id]; !found {
			track.IncNoMatch()
		}
	}

	// 5. Remove tracks that have disappeared for too long
	for id, track := range bt.Objects {
		if track.GetNoMatchTimes() >= bt.maxDisappeared {
			delete(bt.Objects, id)
		}
	}

	return nil
}

// GetActiveTracks returns a slice of active tracks.
func (bt *ByteTracker[B]) GetActiveTracks() []B {
	activeTracks := make([]B, 0, len(bt.Objects))
	for _, track := range bt.Objects {
		if track.GetNoMatchTimes() < bt.maxDisappeared {
			activeTracks = append(activeTracks, track)
		}
	}
	return activeTracks
}

// createIoUMatrix builds the rotated-box IoU matrix for one matching stage:
// rows are tracks, columns are the stage's detections.
func (bt *ByteTracker[B]) createIoUMatrix(
	tracks []trackBox,
	detectionIndices []int,
	allDetections []B,
) [][]float64 {
	iouMatrix := make([][]float64, len(tracks))
	for i, tb := range tracks {
		row := make([]float64, len(detectionIndices))
		for j, detIdx := range detectionIndices {
			row[j] = IoU(tb.BBox, allDetections[detIdx].GetBBox())
		}
		iouMatrix[i] = row
	}
	return iouMatrix
}

// performMatching assigns detections to tracks with the configured algorithm.
// Returns pairs of {trackIndex, detectionIndex}, both local to this stage.
func (bt *ByteTracker[B]) performMatching(
	iouMatrix [][]float64,
	tracks []trackBox,
	detectionIndices []int,
) [][2]int {
	switch bt.algorithm {
	case MatchingAlgorithmHungarian:
		return bt.performHungarianMatching(iouMatrix, tracks, detectionIndices)
	case MatchingAlgorithmGreedy:
		return bt.performGreedyMatching(iouMatrix, tracks, detectionIndices)
	default:
		return bt.performGreedyMatching(iouMatrix, tracks, detectionIndices)
	}
}

// performHungarianMatching runs the Kuhn-Munkres assignment on the IoU matrix,
// padding it square with zero scores when the stage is rectangular.
func (bt *ByteTracker[B]) performHungarianMatching(
	iouMatrix [][]float64,
	tracks []trackBox,
	detectionIndices []int,
) [][2]int {
	numTracks := len(tracks)
	numDetections := len(detectionIndices)
	if numTracks == 0 || numDetections == 0 {
		return [][2]int{}
	}

	paddedMatrix := iouMatrix
	if numTracks != numDetections {
		paddedSize := max(numTracks, numDetections)
		paddedMatrix = make([][]float64, paddedSize)
		for i := 0; i < paddedSize; i++ {
			paddedMatrix[i] = make([]float64, paddedSize)
		}
		// Padding keeps 0.0 (lowest IoU) in the dummy cells
		for i := 0; i < numTracks; i++ {
			copy(paddedMatrix[i], iouMatrix[i])
		}
	}

	assignments := hungarian.SolveMax(paddedMatrix)
	matches := make([][2]int, 0, numTracks)
	for trackIndex, rowMap := range assignments {
		if trackIndex >= numTracks {
			continue
		}
		// The inner map holds one entry: {detectionIndex: iouValue}
		for detectionIndex := range rowMap {
			if detectionIndex < numDetections {
				matches = append(matches, [2]int{trackIndex, detectionIndex})
			}
			break
		}
	}
	return matches
}

// performGreedyMatching picks for each track the best not-yet-taken detection.
func (bt *ByteTracker[B]) performGreedyMatching(
	iouMatrix [][]float64,
	tracks []trackBox,
	detectionIndices []int,
) [][2]int {
	matches := make([][2]int, 0)
	matchedDetIndicesInStage := make(map[int]struct{})
	numTracks := len(tracks)
	numDetections := len(detectionIndices)
	if numTracks == 0 || numDetections == 0 {
		return matches
	}
	for i := 0; i < numTracks; i++ {
		bestIoU := -1.0
		bestDetIdx := -1
		for j := 0; j < numDetections; j++ {
			if _, found := matchedDetIndicesInStage[j]; found {
				continue
			}
			currentIoU := iouMatrix[i][j]
			if currentIoU > bestIoU && currentIoU >= bt.minIoU {
				bestIoU = currentIoU
				bestDetIdx = j
			}
		}
		if bestDetIdx != -1 {
			matches = append(matches, [2]int{i, bestDetIdx})
			matchedDetIndicesInStage[bestDetIdx] = struct{}{}
		}
	}
	return matches
}

// processMatches updates tracks from their matched detections and records the
// matched track IDs and original detection indices.
func (bt *ByteTracker[B]) processMatches(
	matches [][2]int,
	tracks []trackBox,
	detectionIndices []int,
	iouMatrix [][]float64,
	allDetections []B,
	matchedTracks map[uuid.UUID]struct{},
	matchedDetections map[int]struct{},
) error {
	for _, match := range matches {
		trackIdx := match[0]
		detIdx := match[1]
		if iouMatrix[trackIdx][detIdx] < bt.minIoU {
			continue
		}
		trackID := tracks[trackIdx].ID
		originalDetIdx := detectionIndices[detIdx]
		if track, ok := bt.Objects[trackID]; ok {
			err := track.Update(allDetections[originalDetIdx])
			if err != nil {
				return fmt.Errorf("failed to update track %s: %w", trackID, err)
			}
			track.ResetNoMatch()
			matchedTracks[trackID] = struct{}{}
			matchedDetections[originalDetIdx] = struct{}{}
		}
	}
	return nil
}
