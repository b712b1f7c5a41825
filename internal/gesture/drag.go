package gesture

import (
	"errors"
	"fmt"

	"github.com/lrousseau/montage/internal/timeline"
	"github.com/lrousseau/montage/internal/timescale"
)

// Drag is an in-progress segment move. Horizontal pixel deltas become time
// deltas through the timescale mapper; vertical movement can relocate the
// segment onto another track of the same kind. Every preview position goes
// through the snap resolver, and the commit keeps the last previewed
// position, so the final placement is exactly what was shown.
type Drag struct {
	st        *timeline.Store
	segID     string
	origStart float64
	origTrack string
	origY     int
	snap      *timeline.Snapshot
	done      bool
}

// BeginDrag starts a move gesture on the given segment. pointerY is the
// absolute Y where the gesture started, used for the track-change
// threshold.
func BeginDrag(st *timeline.Store, segID string, pointerY int) (*Drag, error) {
	seg, err := st.Segment(segID)
	if err != nil {
		return nil, fmt.Errorf("begin drag: %w", err)
	}
	tr, err := st.TrackInfo(seg.TrackID)
	if err != nil {
		return nil, fmt.Errorf("begin drag: %w", err)
	}
	if tr.Locked {
		return nil, fmt.Errorf("begin drag: %w", timeline.ErrTrackLocked)
	}
	return &Drag{
		st:        st,
		segID:     segID,
		origStart: seg.Start,
		origTrack: seg.TrackID,
		origY:     pointerY,
		snap:      st.Snapshot(),
	}, nil
}

// Update applies the current pointer position as a preview. dxPixels is the
// horizontal displacement since the gesture began; pointerY is the absolute
// vertical position. A rejected position (overlap, bounds) leaves the last
// valid preview in place and returns the error for status display.
func (d *Drag) Update(dxPixels float64, pointerY int, zoom timescale.Zoom, layout TrackLayout) error {
	if d.done {
		return nil
	}

	raw := d.origStart + timescale.PixelsToTime(dxPixels, zoom)

	target := d.currentTrack()
	if candidate, ok := layout.TrackAt(pointerY); ok && candidate != target {
		// Only change membership once the pointer has moved far enough
		// vertically; small wobbles during a horizontal drag stay put.
		h := layout.bandHeight(target)
		if h > 0 && abs(pointerY-d.origY) > int(float64(h)*trackChangeFraction) {
			target = candidate
		}
	}

	snapped := timescale.SnapWithBoundaries(raw, d.boundaries(target))

	err := d.st.MoveSegment(d.segID, snapped, target)
	if errors.Is(err, timeline.ErrTrackKindMismatch) {
		// Cross-kind target: fall back to a same-track, time-only move.
		err = d.st.MoveSegment(d.segID, snapped, d.currentTrack())
	}
	return err
}

// Commit ends the gesture, keeping the last valid previewed position.
func (d *Drag) Commit() {
	d.done = true
}

// Abort ends the gesture and restores the pre-gesture state, e.g. when the
// drag ended outside a valid drop target.
func (d *Drag) Abort() {
	if d.done {
		return
	}
	d.st.Restore(d.snap)
	d.done = true
}

// SegmentID returns the id of the dragged segment.
func (d *Drag) SegmentID() string {
	return d.segID
}

// currentTrack returns the track the segment sits on right now, which may
// already differ from the original during a cross-track drag.
func (d *Drag) currentTrack() string {
	if id, err := d.st.TrackFor(d.segID); err == nil {
		return id
	}
	return d.origTrack
}

// boundaries collects the start/end times of the other segments on the
// target track, so the snap resolver can prefer butting up against a
// neighbor over the grid.
func (d *Drag) boundaries(trackID string) []float64 {
	segs, err := d.st.SegmentsInOrder(trackID)
	if err != nil {
		return nil
	}
	var out []float64
	for _, s := range segs {
		if s.ID == d.segID {
			continue
		}
		out = append(out, s.Start, s.End())
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
