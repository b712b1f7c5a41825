package composition

import "github.com/lrousseau/montage/internal/timeline"

// Project recomputes the derived sequence from the store. Disabled segments
// are projected out entirely; the spans they would have covered become gaps
// like any other unoccupied span. Every lane covers [0, Duration) without
// holes, with explicit gap entries filling leading, inner and trailing
// space.
func Project(st *timeline.Store) Sequence {
	total := st.TotalDuration()
	tracks := st.Tracks()

	seq := Sequence{
		Duration: total,
		Lanes:    make([]Lane, 0, len(tracks)),
	}

	for _, tr := range tracks {
		lane := Lane{
			TrackID: tr.ID,
			Kind:    tr.Kind,
			Index:   tr.Index,
			Muted:   tr.Muted,
		}

		segs, err := st.SegmentsInOrder(tr.ID)
		if err != nil {
			// Track listed by the store a moment ago; cannot happen while
			// projection runs synchronously on the owning thread.
			seq.Lanes = append(seq.Lanes, lane)
			continue
		}

		cursor := 0.0
		for _, seg := range segs {
			if !seg.Enabled {
				continue
			}
			if seg.Start > cursor {
				lane.Entries = append(lane.Entries, Entry{
					Kind:  EntryGap,
					Start: cursor,
					End:   seg.Start,
				})
			}
			lane.Entries = append(lane.Entries, Entry{
				Kind:    EntryClip,
				Segment: seg,
				Start:   seg.Start,
				End:     seg.End(),
			})
			cursor = seg.End()
		}
		if cursor < total {
			lane.Entries = append(lane.Entries, Entry{
				Kind:  EntryGap,
				Start: cursor,
				End:   total,
			})
		}

		seq.Lanes = append(seq.Lanes, lane)
	}

	return seq
}
