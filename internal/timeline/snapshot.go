package timeline

// Snapshot is a deep copy of the store's state, taken before a gesture
// begins so an aborted drag or a failed bulk operation can roll back to the
// last committed state.
type Snapshot struct {
	tracks         []*Track
	segments       map[string]*Segment
	trailingMargin float64
}

// Snapshot captures the current state.
func (st *Store) Snapshot() *Snapshot {
	sn := &Snapshot{
		tracks:         make([]*Track, 0, len(st.tracks)),
		segments:       make(map[string]*Segment, len(st.segments)),
		trailingMargin: st.trailingMargin,
	}
	for _, t := range st.tracks {
		c := *t
		c.segmentIDs = append([]string(nil), t.segmentIDs...)
		sn.tracks = append(sn.tracks, &c)
	}
	for id, seg := range st.segments {
		c := *seg
		c.Params = cloneParams(seg.Params)
		sn.segments[id] = &c
	}
	return sn
}

// Restore replaces the store's state with the snapshot's. The snapshot is
// consumed: restoring it twice requires taking it again.
func (st *Store) Restore(sn *Snapshot) {
	st.tracks = sn.tracks
	st.segments = sn.segments
	st.trailingMargin = sn.trailingMargin
}
