// Package composition derives the ordered, gap-filled sequence that the
// playback and export collaborators consume. The projection is recomputed
// synchronously and from scratch after every committed mutation; there is no
// incremental state that can drift from the store.
package composition

import "github.com/lrousseau/montage/internal/timeline"

// EntryKind distinguishes played clip spans from explicit gaps.
type EntryKind int

const (
	EntryClip EntryKind = iota
	EntryGap
)

// String returns the entry kind name.
func (k EntryKind) String() string {
	switch k {
	case EntryClip:
		return "Clip"
	case EntryGap:
		return "Gap"
	default:
		return "Unknown"
	}
}

// Entry is one span of a lane: either an enabled segment or a gap the
// renderer must treat as black/silence, never as "nothing rendered".
type Entry struct {
	Kind    EntryKind
	Segment timeline.Segment // zero value for gaps
	Start   float64
	End     float64
}

// Duration returns the entry's span in seconds.
func (e Entry) Duration() float64 {
	return e.End - e.Start
}

// Lane is the derived view of one track: contiguous entries covering the
// full sequence duration in composition order.
type Lane struct {
	TrackID string
	Kind    timeline.TrackKind
	Index   int
	Muted   bool
	Entries []Entry
}

// Sequence is the full derived timeline handed to downstream collaborators.
type Sequence struct {
	Duration float64
	Lanes    []Lane
}

// VideoLanes returns the video lanes in render order.
func (s Sequence) VideoLanes() []Lane {
	return s.lanesOf(timeline.TrackVideo)
}

// AudioLanes returns the audio lanes in render order.
func (s Sequence) AudioLanes() []Lane {
	return s.lanesOf(timeline.TrackAudio)
}

func (s Sequence) lanesOf(kind timeline.TrackKind) []Lane {
	var out []Lane
	for _, l := range s.Lanes {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}
