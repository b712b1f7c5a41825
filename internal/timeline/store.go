// Package timeline implements the composition model: tracks, segments and
// the validated mutations that edit them.
//
// The Store is the single owner of all timeline state. Every mutation
// validates fully against the current state before committing, so a returned
// error always means "nothing changed". The Store is not goroutine-safe by
// design: all edits happen sequentially on the thread that owns the
// interactive session.
package timeline

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// DefaultTrailingMargin is the editable space kept beyond the last segment.
const DefaultTrailingMargin = 5.0

// MinTimelineSpan is the floor for the total timeline duration, so an empty
// project still presents editable space.
const MinTimelineSpan = 60.0

// ClipSource resolves a source-clip reference to its media duration.
// Implemented by the clip registry collaborator; trims are clamped against
// it when the clip is known.
type ClipSource interface {
	ClipDuration(clipID string) (float64, bool)
}

// Store owns the canonical track and segment state.
type Store struct {
	tracks         []*Track
	segments       map[string]*Segment
	clips          ClipSource
	trailingMargin float64
}

// New creates a Store with one video and one audio track, the minimum
// configuration (removing the last track of a kind is forbidden).
func New(clips ClipSource) *Store {
	st := &Store{
		segments:       make(map[string]*Segment),
		clips:          clips,
		trailingMargin: DefaultTrailingMargin,
	}
	st.AddTrack(TrackVideo)
	st.AddTrack(TrackAudio)
	return st
}

// SetTrailingMargin overrides the editable space kept past the last segment.
func (st *Store) SetTrailingMargin(margin float64) {
	if margin >= 0 {
		st.trailingMargin = margin
	}
}

// --- tracks ---

// AddTrack appends a track of the given kind and returns a copy of it.
func (st *Store) AddTrack(kind TrackKind) Track {
	idx := 0
	for _, t := range st.tracks {
		if t.Kind == kind {
			idx++
		}
	}
	tr := &Track{
		ID:    uuid.NewString(),
		Kind:  kind,
		Index: idx,
	}
	st.tracks = append(st.tracks, tr)
	st.sortTracks()
	return *tr
}

// RemoveTrack removes an empty track. Removing the last track of a kind or
// a track that still owns segments is rejected.
func (st *Store) RemoveTrack(id string) error {
	tr := st.trackByID(id)
	if tr == nil {
		return fmt.Errorf("remove track %s: %w", id, ErrNotFound)
	}
	if tr.Len() > 0 {
		return fmt.Errorf("remove track %s: %w", id, ErrTrackNotEmpty)
	}
	kindCount := 0
	for _, t := range st.tracks {
		if t.Kind == tr.Kind {
			kindCount++
		}
	}
	if kindCount <= 1 {
		return fmt.Errorf("remove track %s: %w", id, ErrLastTrack)
	}
	for i, t := range st.tracks {
		if t.ID == id {
			st.tracks = append(st.tracks[:i], st.tracks[i+1:]...)
			break
		}
	}
	// Close the index gap within the kind.
	idx := 0
	for _, t := range st.tracks {
		if t.Kind == tr.Kind {
			t.Index = idx
			idx++
		}
	}
	return nil
}

// SetMuted sets a track's mute flag.
func (st *Store) SetMuted(id string, muted bool) error {
	tr := st.trackByID(id)
	if tr == nil {
		return fmt.Errorf("mute track %s: %w", id, ErrNotFound)
	}
	tr.Muted = muted
	return nil
}

// SetLocked sets a track's lock flag. Segments on a locked track reject all
// mutations until it is unlocked.
func (st *Store) SetLocked(id string, locked bool) error {
	tr := st.trackByID(id)
	if tr == nil {
		return fmt.Errorf("lock track %s: %w", id, ErrNotFound)
	}
	tr.Locked = locked
	return nil
}

// Tracks returns copies of all tracks in render order: video tracks first,
// then audio, each kind ordered by index.
func (st *Store) Tracks() []Track {
	out := make([]Track, 0, len(st.tracks))
	for _, t := range st.tracks {
		out = append(out, *t)
	}
	return out
}

// TrackInfo returns a copy of the track with the given id.
func (st *Store) TrackInfo(id string) (Track, error) {
	tr := st.trackByID(id)
	if tr == nil {
		return Track{}, fmt.Errorf("track %s: %w", id, ErrNotFound)
	}
	return *tr, nil
}

// --- segments ---

// AddSegment validates and inserts a segment, returning its id. If seg.ID is
// empty a fresh id is assigned. The placement is checked for source bounds
// and, when enabled, for overlap with enabled segments on the target track.
func (st *Store) AddSegment(seg Segment) (string, error) {
	tr := st.trackByID(seg.TrackID)
	if tr == nil {
		return "", fmt.Errorf("add segment: track %s: %w", seg.TrackID, ErrNotFound)
	}
	if tr.Locked {
		return "", fmt.Errorf("add segment: %w", ErrTrackLocked)
	}
	if seg.ID == "" {
		seg.ID = uuid.NewString()
	}
	if _, exists := st.segments[seg.ID]; exists {
		return "", fmt.Errorf("add segment: id %s already present", seg.ID)
	}
	if err := st.checkBounds(seg); err != nil {
		return "", fmt.Errorf("add segment: %w", err)
	}
	if err := st.checkOverlap(seg, tr); err != nil {
		return "", fmt.Errorf("add segment: %w", err)
	}

	seg.Params = cloneParams(seg.Params)
	st.segments[seg.ID] = &seg
	tr.segmentIDs = append(tr.segmentIDs, seg.ID)
	st.sortTrack(tr)
	return seg.ID, nil
}

// RemoveSegment deletes a segment.
func (st *Store) RemoveSegment(id string) error {
	seg, tr, err := st.segmentAndTrack(id)
	if err != nil {
		return fmt.Errorf("remove segment: %w", err)
	}
	if tr.Locked {
		return fmt.Errorf("remove segment: %w", ErrTrackLocked)
	}
	delete(st.segments, seg.ID)
	tr.removeSegmentID(seg.ID)
	return nil
}

// UpdateTiming replaces a segment's source window, keeping its
// composition-start fixed. The new duration is validated against source
// bounds and against neighbors before committing.
func (st *Store) UpdateTiming(id string, newIn, newOut float64) error {
	seg, tr, err := st.segmentAndTrack(id)
	if err != nil {
		return fmt.Errorf("update timing: %w", err)
	}
	if tr.Locked {
		return fmt.Errorf("update timing: %w", ErrTrackLocked)
	}
	updated := *seg
	updated.SourceIn = newIn
	updated.SourceOut = newOut
	if err := st.checkBounds(updated); err != nil {
		return fmt.Errorf("update timing: %w", err)
	}
	if err := st.checkOverlap(updated, tr); err != nil {
		return fmt.Errorf("update timing: %w", err)
	}
	seg.SourceIn = newIn
	seg.SourceOut = newOut
	return nil
}

// MoveSegment relocates a segment to a new composition-start, optionally on
// another track of the same kind. Cross-kind moves are rejected and leave
// the segment on its original track. The track reference and start commit
// atomically so overlap is always checked against the correct track.
func (st *Store) MoveSegment(id string, newStart float64, targetTrackID string) error {
	seg, from, err := st.segmentAndTrack(id)
	if err != nil {
		return fmt.Errorf("move segment: %w", err)
	}
	target := st.trackByID(targetTrackID)
	if target == nil {
		return fmt.Errorf("move segment: track %s: %w", targetTrackID, ErrNotFound)
	}
	if from.Locked || target.Locked {
		return fmt.Errorf("move segment: %w", ErrTrackLocked)
	}
	if target.Kind != from.Kind {
		return fmt.Errorf("move segment: %s onto %s: %w", from.Kind, target.Kind, ErrTrackKindMismatch)
	}
	if newStart < 0 {
		return fmt.Errorf("move segment: start %.3f: %w", newStart, ErrBounds)
	}

	moved := *seg
	moved.Start = newStart
	moved.TrackID = target.ID
	if err := st.checkOverlap(moved, target); err != nil {
		return fmt.Errorf("move segment: %w", err)
	}

	if from.ID != target.ID {
		from.removeSegmentID(seg.ID)
		target.segmentIDs = append(target.segmentIDs, seg.ID)
	}
	seg.Start = newStart
	seg.TrackID = target.ID
	st.sortTrack(target)
	return nil
}

// SplitSegment cuts a segment at a composition time strictly inside it,
// producing two adjacent children that share the source clip. The split
// point must leave at least splitMargin on each side. Returns the ids of the
// left and right children.
func (st *Store) SplitSegment(id string, at float64) (string, string, error) {
	seg, tr, err := st.segmentAndTrack(id)
	if err != nil {
		return "", "", fmt.Errorf("split segment: %w", err)
	}
	if tr.Locked {
		return "", "", fmt.Errorf("split segment: %w", ErrTrackLocked)
	}
	if at <= seg.Start+splitMargin || at >= seg.End()-splitMargin {
		return "", "", fmt.Errorf("split segment at %.3f in [%.3f, %.3f]: %w",
			at, seg.Start, seg.End(), ErrSplit)
	}

	cut := seg.SourceIn + (at - seg.Start)

	left := *seg
	left.ID = uuid.NewString()
	left.SourceOut = cut
	left.Params = cloneParams(seg.Params)

	right := *seg
	right.ID = uuid.NewString()
	right.SourceIn = cut
	right.Start = at
	right.Params = cloneParams(seg.Params)

	delete(st.segments, seg.ID)
	tr.removeSegmentID(seg.ID)
	st.segments[left.ID] = &left
	st.segments[right.ID] = &right
	tr.segmentIDs = append(tr.segmentIDs, left.ID, right.ID)
	st.sortTrack(tr)
	return left.ID, right.ID, nil
}

// ToggleEnabled flips a segment's enabled flag. Disabling always succeeds;
// enabling re-validates the segment against its enabled neighbors and leaves
// it disabled when the position is now occupied.
func (st *Store) ToggleEnabled(id string) error {
	seg, tr, err := st.segmentAndTrack(id)
	if err != nil {
		return fmt.Errorf("toggle segment: %w", err)
	}
	if tr.Locked {
		return fmt.Errorf("toggle segment: %w", ErrTrackLocked)
	}
	if seg.Enabled {
		seg.Enabled = false
		return nil
	}
	enabled := *seg
	enabled.Enabled = true
	if err := st.checkOverlap(enabled, tr); err != nil {
		return fmt.Errorf("toggle segment: %w", err)
	}
	seg.Enabled = true
	return nil
}

// DeleteSelected removes every segment in ids, skipping unknown ids and
// segments on locked tracks. Returns the number actually deleted.
func (st *Store) DeleteSelected(ids []string) int {
	deleted := 0
	for _, id := range ids {
		if err := st.RemoveSegment(id); err == nil {
			deleted++
		}
	}
	return deleted
}

// NudgeSelected shifts every segment in ids by delta seconds on its own
// track. The whole operation is atomic: if any single move fails, the store
// is restored to its prior state and the error returned.
func (st *Store) NudgeSelected(ids []string, delta float64) error {
	if len(ids) == 0 || delta == 0 {
		return nil
	}
	type item struct {
		id    string
		start float64
		track string
	}
	items := make([]item, 0, len(ids))
	for _, id := range ids {
		seg, ok := st.segments[id]
		if !ok {
			return fmt.Errorf("nudge: segment %s: %w", id, ErrNotFound)
		}
		items = append(items, item{id: id, start: seg.Start, track: seg.TrackID})
	}
	// Move trailing segments first when shifting right so members of the
	// selection never collide with each other mid-operation.
	sort.Slice(items, func(i, j int) bool {
		if delta > 0 {
			return items[i].start > items[j].start
		}
		return items[i].start < items[j].start
	})

	snap := st.Snapshot()
	for _, it := range items {
		if err := st.MoveSegment(it.id, it.start+delta, it.track); err != nil {
			st.Restore(snap)
			return fmt.Errorf("nudge: %w", err)
		}
	}
	return nil
}

// --- queries ---

// Segment returns a copy of the segment with the given id.
func (st *Store) Segment(id string) (Segment, error) {
	seg, ok := st.segments[id]
	if !ok {
		return Segment{}, fmt.Errorf("segment %s: %w", id, ErrNotFound)
	}
	out := *seg
	out.Params = cloneParams(seg.Params)
	return out, nil
}

// CompositionStart returns a segment's authoritative start time.
func (st *Store) CompositionStart(id string) (float64, error) {
	seg, ok := st.segments[id]
	if !ok {
		return 0, fmt.Errorf("segment %s: %w", id, ErrNotFound)
	}
	return seg.Start, nil
}

// TrackFor returns the id of the track owning the segment.
func (st *Store) TrackFor(id string) (string, error) {
	seg, ok := st.segments[id]
	if !ok {
		return "", fmt.Errorf("segment %s: %w", id, ErrNotFound)
	}
	return seg.TrackID, nil
}

// SegmentsInOrder returns copies of a track's segments ordered by
// composition-start.
func (st *Store) SegmentsInOrder(trackID string) ([]Segment, error) {
	tr := st.trackByID(trackID)
	if tr == nil {
		return nil, fmt.Errorf("track %s: %w", trackID, ErrNotFound)
	}
	out := make([]Segment, 0, len(tr.segmentIDs))
	for _, id := range tr.segmentIDs {
		seg := st.segments[id]
		c := *seg
		c.Params = cloneParams(seg.Params)
		out = append(out, c)
	}
	return out, nil
}

// TotalDuration returns the timeline span: the latest composition-end plus
// the trailing margin, floored at MinTimelineSpan so the editable space
// always extends past the content.
func (st *Store) TotalDuration() float64 {
	maxEnd := 0.0
	for _, seg := range st.segments {
		if end := seg.End(); end > maxEnd {
			maxEnd = end
		}
	}
	total := maxEnd + st.trailingMargin
	if total < MinTimelineSpan {
		return MinTimelineSpan
	}
	return total
}

// --- internals ---

func (st *Store) trackByID(id string) *Track {
	for _, t := range st.tracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (st *Store) segmentAndTrack(id string) (*Segment, *Track, error) {
	seg, ok := st.segments[id]
	if !ok {
		return nil, nil, fmt.Errorf("segment %s: %w", id, ErrNotFound)
	}
	tr := st.trackByID(seg.TrackID)
	if tr == nil {
		return nil, nil, fmt.Errorf("track %s: %w", seg.TrackID, ErrNotFound)
	}
	return seg, tr, nil
}

// checkBounds validates invariants 2 and 3: non-negative start, source
// window inside the clip, duration at least MinDuration.
func (st *Store) checkBounds(seg Segment) error {
	if seg.Start < 0 {
		return fmt.Errorf("start %.3f: %w", seg.Start, ErrBounds)
	}
	if seg.SourceIn < 0 {
		return fmt.Errorf("source-in %.3f: %w", seg.SourceIn, ErrBounds)
	}
	if seg.Duration() < MinDuration {
		return fmt.Errorf("duration %.3f below minimum: %w", seg.Duration(), ErrBounds)
	}
	if seg.ClipID != "" && st.clips != nil {
		if dur, ok := st.clips.ClipDuration(seg.ClipID); ok && seg.SourceOut > dur {
			return fmt.Errorf("source-out %.3f past clip end %.3f: %w", seg.SourceOut, dur, ErrBounds)
		}
	}
	return nil
}

// checkOverlap validates invariant 1 for seg against the enabled segments on
// tr, ignoring seg itself. Disabled segments are exempt but keep their
// position.
func (st *Store) checkOverlap(seg Segment, tr *Track) error {
	if !seg.Enabled {
		return nil
	}
	for _, id := range tr.segmentIDs {
		if id == seg.ID {
			continue
		}
		other := st.segments[id]
		if !other.Enabled {
			continue
		}
		if overlaps(seg, *other) {
			return fmt.Errorf("[%.3f, %.3f] collides with %s [%.3f, %.3f]: %w",
				seg.Start, seg.End(), other.ID, other.Start, other.End(), ErrOverlap)
		}
	}
	return nil
}

func (st *Store) sortTrack(tr *Track) {
	sort.SliceStable(tr.segmentIDs, func(i, j int) bool {
		return st.segments[tr.segmentIDs[i]].Start < st.segments[tr.segmentIDs[j]].Start
	})
}

func (st *Store) sortTracks() {
	sort.SliceStable(st.tracks, func(i, j int) bool {
		if st.tracks[i].Kind != st.tracks[j].Kind {
			return st.tracks[i].Kind == TrackVideo
		}
		return st.tracks[i].Index < st.tracks[j].Index
	})
}
