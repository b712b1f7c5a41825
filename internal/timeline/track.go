package timeline

// TrackKind distinguishes video and audio lanes.
type TrackKind int

const (
	TrackVideo TrackKind = iota
	TrackAudio
)

// String returns the kind name.
func (k TrackKind) String() string {
	switch k {
	case TrackVideo:
		return "Video"
	case TrackAudio:
		return "Audio"
	default:
		return "Unknown"
	}
}

// Track is an ordered lane of non-overlapping segments of one kind.
// Video tracks render above audio tracks; within a kind, a lower Index
// renders closer to the primary position.
type Track struct {
	ID     string
	Kind   TrackKind
	Index  int
	Muted  bool
	Locked bool

	// segmentIDs is kept ordered by composition-start. Maintained by the
	// Store; a track owns a segment only if that segment's TrackID matches.
	segmentIDs []string
}

// Len returns the number of segments on the track.
func (t *Track) Len() int {
	return len(t.segmentIDs)
}

// SegmentIDs returns the track's segment ids in composition order.
// The slice is a copy; mutating it does not affect the track.
func (t *Track) SegmentIDs() []string {
	out := make([]string, len(t.segmentIDs))
	copy(out, t.segmentIDs)
	return out
}

func (t *Track) removeSegmentID(id string) {
	for i, sid := range t.segmentIDs {
		if sid == id {
			t.segmentIDs = append(t.segmentIDs[:i], t.segmentIDs[i+1:]...)
			return
		}
	}
}
