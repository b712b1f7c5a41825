package gesture

import (
	"fmt"

	"github.com/lrousseau/montage/internal/timeline"
	"github.com/lrousseau/montage/internal/timescale"
)

// Edge selects which segment edge a trim gesture adjusts.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "Left"
	case EdgeRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Trim is an in-progress edge trim. The constraint engine clamps every
// proposed value against source bounds and the current neighbors, so the
// preview always shows a committed-legal result.
type Trim struct {
	st      *timeline.Store
	segID   string
	edge    Edge
	origIn  float64
	origOut float64
	snap    *timeline.Snapshot
	done    bool
}

// BeginTrim starts a trim gesture on the given segment edge.
func BeginTrim(st *timeline.Store, segID string, edge Edge) (*Trim, error) {
	seg, err := st.Segment(segID)
	if err != nil {
		return nil, fmt.Errorf("begin trim: %w", err)
	}
	tr, err := st.TrackInfo(seg.TrackID)
	if err != nil {
		return nil, fmt.Errorf("begin trim: %w", err)
	}
	if tr.Locked {
		return nil, fmt.Errorf("begin trim: %w", timeline.ErrTrackLocked)
	}
	return &Trim{
		st:      st,
		segID:   segID,
		edge:    edge,
		origIn:  seg.SourceIn,
		origOut: seg.SourceOut,
		snap:    st.Snapshot(),
	}, nil
}

// Update applies the pointer's horizontal displacement as a proposed trim.
// Deltas are measured from the gesture start, not the previous frame, so a
// trim is reproducible regardless of how the pointer got there.
func (t *Trim) Update(dxPixels float64, zoom timescale.Zoom) error {
	if t.done {
		return nil
	}
	delta := timescale.PixelsToTime(dxPixels, zoom)
	switch t.edge {
	case EdgeLeft:
		return t.st.TrimLeft(t.segID, t.origIn+delta)
	case EdgeRight:
		return t.st.TrimRight(t.segID, t.origOut+delta)
	}
	return nil
}

// Commit ends the gesture, keeping the clamped result.
func (t *Trim) Commit() {
	t.done = true
}

// Abort restores the pre-gesture state.
func (t *Trim) Abort() {
	if t.done {
		return
	}
	t.st.Restore(t.snap)
	t.done = true
}

// SegmentID returns the id of the trimmed segment.
func (t *Trim) SegmentID() string {
	return t.segID
}
