package timeline

import "fmt"

// Trim operations are "ripple-free": they adjust only the trimmed segment's
// bounds and never shift other segments. Clamping here is part of the
// contract, not a failure mode: the committed result is the proposed value
// pulled back inside source bounds and neighbor limits. Both trims evaluate
// neighbors against the current store state, never a cached snapshot, since
// an earlier edit (a split, say) can change which segment is adjacent.

// TrimLeft trims a segment's left edge to a proposed new source-in. The
// composition-start shifts symmetrically so the segment's end stays fixed.
//
// Clamp order:
//  1. source bounds: 0 <= in <= sourceOut - MinDuration (and start >= 0)
//  2. the preceding enabled neighbor's composition-end
func (st *Store) TrimLeft(id string, proposedIn float64) error {
	seg, tr, err := st.segmentAndTrack(id)
	if err != nil {
		return fmt.Errorf("trim left: %w", err)
	}
	if tr.Locked {
		return fmt.Errorf("trim left: %w", ErrTrackLocked)
	}

	// Clamp 1: source bounds. The lower bound also keeps the shifted
	// composition-start non-negative.
	minIn := 0.0
	if seg.Start < seg.SourceIn {
		minIn = seg.SourceIn - seg.Start
	}
	maxIn := seg.SourceOut - MinDuration
	in := clamp(proposedIn, minIn, maxIn)
	start := seg.Start + (in - seg.SourceIn)

	// Clamp 2: don't cross the preceding enabled neighbor.
	if prev := st.prevEnabled(tr, seg); prev != nil && start < prev.End() {
		in += prev.End() - start
		start = prev.End()
		// A neighbor clamp can only pull the edge rightwards, so the only
		// source bound it can breach is the minimum-duration one.
		if in > maxIn {
			start -= in - maxIn
			in = maxIn
		}
	}

	seg.SourceIn = in
	seg.Start = start
	return nil
}

// TrimRight trims a segment's right edge to a proposed new source-out,
// keeping its composition-start fixed.
//
// Clamp order:
//  1. source bounds: sourceIn + MinDuration <= out <= clip duration
//  2. the following enabled neighbor's composition-start
func (st *Store) TrimRight(id string, proposedOut float64) error {
	seg, tr, err := st.segmentAndTrack(id)
	if err != nil {
		return fmt.Errorf("trim right: %w", err)
	}
	if tr.Locked {
		return fmt.Errorf("trim right: %w", ErrTrackLocked)
	}

	minOut := seg.SourceIn + MinDuration
	maxOut := proposedOut
	if seg.ClipID != "" && st.clips != nil {
		if dur, ok := st.clips.ClipDuration(seg.ClipID); ok {
			maxOut = dur
		}
	}
	out := clamp(proposedOut, minOut, maxOut)

	if next := st.nextEnabled(tr, seg); next != nil {
		if end := seg.Start + (out - seg.SourceIn); end > next.Start {
			out = seg.SourceIn + (next.Start - seg.Start)
			if out < minOut {
				out = minOut
			}
		}
	}

	seg.SourceOut = out
	return nil
}

// prevEnabled returns the closest enabled segment on tr that ends at or
// before seg starts, or nil.
func (st *Store) prevEnabled(tr *Track, seg *Segment) *Segment {
	var prev *Segment
	for _, id := range tr.segmentIDs {
		other := st.segments[id]
		if other.ID == seg.ID || !other.Enabled {
			continue
		}
		if other.Start < seg.Start && (prev == nil || other.End() > prev.End()) {
			prev = other
		}
	}
	return prev
}

// nextEnabled returns the closest enabled segment on tr that starts at or
// after seg ends, or nil.
func (st *Store) nextEnabled(tr *Track, seg *Segment) *Segment {
	var next *Segment
	for _, id := range tr.segmentIDs {
		other := st.segments[id]
		if other.ID == seg.ID || !other.Enabled {
			continue
		}
		if other.Start > seg.Start && (next == nil || other.Start < next.Start) {
			next = other
		}
	}
	return next
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
