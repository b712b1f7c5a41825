package timeline

import "errors"

// Mutation errors. Every Store operation validates fully before touching
// state, so any of these means the store is unchanged. All are recoverable:
// the gesture layer reverts its preview and the user tries again.
var (
	// ErrOverlap means a proposed placement collides with another enabled
	// segment on the same track.
	ErrOverlap = errors.New("segments overlap")

	// ErrBounds means source-in/out landed outside the source clip or the
	// resulting duration fell below MinDuration.
	ErrBounds = errors.New("timing outside source bounds")

	// ErrSplit means the split point is not strictly inside the segment.
	ErrSplit = errors.New("split point not inside segment")

	// ErrTrackKindMismatch means a segment was moved onto a track of a
	// different kind (video onto audio or vice versa).
	ErrTrackKindMismatch = errors.New("track kind mismatch")

	// ErrNotFound means the referenced segment or track id is absent.
	ErrNotFound = errors.New("not found")

	// ErrTrackLocked means the segment's track rejects mutations.
	ErrTrackLocked = errors.New("track is locked")

	// ErrTrackNotEmpty means a track still owning segments was removed.
	ErrTrackNotEmpty = errors.New("track is not empty")

	// ErrLastTrack means the last track of its kind was removed.
	ErrLastTrack = errors.New("cannot remove last track of its kind")
)
