package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClips is a ClipSource backed by a map of clip id -> duration.
type fakeClips map[string]float64

func (f fakeClips) ClipDuration(id string) (float64, bool) {
	d, ok := f[id]
	return d, ok
}

func newTestStore(t *testing.T) (*Store, string, string) {
	t.Helper()
	st := New(fakeClips{"clip-a": 30, "clip-b": 30})
	tracks := st.Tracks()
	require.Len(t, tracks, 2)
	var video, audio string
	for _, tr := range tracks {
		switch tr.Kind {
		case TrackVideo:
			video = tr.ID
		case TrackAudio:
			audio = tr.ID
		}
	}
	require.NotEmpty(t, video)
	require.NotEmpty(t, audio)
	return st, video, audio
}

func clipSeg(track string, in, out, start float64) Segment {
	return Segment{
		ClipID:    "clip-a",
		TrackID:   track,
		SourceIn:  in,
		SourceOut: out,
		Start:     start,
		Enabled:   true,
	}
}

func TestStore_AddSegment(t *testing.T) {
	st, video, _ := newTestStore(t)

	id, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	seg, err := st.Segment(id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, seg.Start)
	assert.Equal(t, 10.0, seg.End())
	assert.Equal(t, video, seg.TrackID)
}

func TestStore_AddSegment_Overlap(t *testing.T) {
	st, video, _ := newTestStore(t)

	_, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)

	_, err = st.AddSegment(clipSeg(video, 0, 10, 5))
	assert.ErrorIs(t, err, ErrOverlap)

	// Touching end-to-start is not an overlap.
	_, err = st.AddSegment(clipSeg(video, 0, 10, 10))
	assert.NoError(t, err)
}

func TestStore_AddSegment_Bounds(t *testing.T) {
	st, video, _ := newTestStore(t)

	_, err := st.AddSegment(clipSeg(video, 0, 10, -1))
	assert.ErrorIs(t, err, ErrBounds, "negative start")

	_, err = st.AddSegment(clipSeg(video, -1, 10, 0))
	assert.ErrorIs(t, err, ErrBounds, "negative source-in")

	_, err = st.AddSegment(clipSeg(video, 5, 5.05, 0))
	assert.ErrorIs(t, err, ErrBounds, "below minimum duration")

	_, err = st.AddSegment(clipSeg(video, 0, 31, 0))
	assert.ErrorIs(t, err, ErrBounds, "source-out past clip duration")

	_, err = st.AddSegment(clipSeg("no-such-track", 0, 10, 0))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_AddSegment_DisabledExemptFromOverlap(t *testing.T) {
	st, video, _ := newTestStore(t)

	_, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)

	disabled := clipSeg(video, 0, 10, 5)
	disabled.Enabled = false
	id, err := st.AddSegment(disabled)
	require.NoError(t, err)

	// Re-enabling while the span is occupied must fail and leave it disabled.
	err = st.ToggleEnabled(id)
	assert.ErrorIs(t, err, ErrOverlap)
	seg, err := st.Segment(id)
	require.NoError(t, err)
	assert.False(t, seg.Enabled)

	// Position is retained while disabled.
	assert.Equal(t, 5.0, seg.Start)
}

func TestStore_MoveSegment(t *testing.T) {
	st, video, _ := newTestStore(t)
	id, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)

	require.NoError(t, st.MoveSegment(id, 12.5, video))

	start, err := st.CompositionStart(id)
	require.NoError(t, err)
	assert.Equal(t, 12.5, start)
}

func TestStore_MoveSegment_CrossTrackSameKind(t *testing.T) {
	st, video, _ := newTestStore(t)
	video2 := st.AddTrack(TrackVideo)

	id, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)

	require.NoError(t, st.MoveSegment(id, 3, video2.ID))

	trackID, err := st.TrackFor(id)
	require.NoError(t, err)
	assert.Equal(t, video2.ID, trackID)

	// The old track no longer owns it.
	segs, err := st.SegmentsInOrder(video)
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestStore_MoveSegment_CrossKindRejected(t *testing.T) {
	st, video, audio := newTestStore(t)
	id, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)

	err = st.MoveSegment(id, 3, audio)
	assert.ErrorIs(t, err, ErrTrackKindMismatch)

	// Track reference and position are unchanged.
	trackID, err := st.TrackFor(id)
	require.NoError(t, err)
	assert.Equal(t, video, trackID)
	start, err := st.CompositionStart(id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, start)
}

func TestStore_MoveSegment_OverlapOnTarget(t *testing.T) {
	st, video, _ := newTestStore(t)
	video2 := st.AddTrack(TrackVideo)

	id, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)
	_, err = st.AddSegment(clipSeg(video2.ID, 0, 10, 5))
	require.NoError(t, err)

	// Overlap is checked against the target track, not the source track.
	err = st.MoveSegment(id, 8, video2.ID)
	assert.ErrorIs(t, err, ErrOverlap)

	trackID, _ := st.TrackFor(id)
	assert.Equal(t, video, trackID, "failed move must not change the track")
}

func TestStore_SplitSegment(t *testing.T) {
	st, video, _ := newTestStore(t)
	id, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)

	leftID, rightID, err := st.SplitSegment(id, 4)
	require.NoError(t, err)

	left, err := st.Segment(leftID)
	require.NoError(t, err)
	right, err := st.Segment(rightID)
	require.NoError(t, err)

	// Content reversibility: the children tile the original exactly.
	assert.Equal(t, left.SourceOut, right.SourceIn)
	assert.InDelta(t, 10.0, left.Duration()+right.Duration(), 1e-9)
	assert.Equal(t, 0.0, left.Start)
	assert.Equal(t, 4.0, left.End())
	assert.Equal(t, 4.0, right.Start)
	assert.Equal(t, 10.0, right.End())
	assert.Equal(t, left.ClipID, right.ClipID)

	// The original is gone.
	_, err = st.Segment(id)
	assert.ErrorIs(t, err, ErrNotFound)

	segs, err := st.SegmentsInOrder(video)
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, leftID, segs[0].ID)
	assert.Equal(t, rightID, segs[1].ID)
}

func TestStore_SplitSegment_TrimmedSource(t *testing.T) {
	st, video, _ := newTestStore(t)
	// Segment plays clip range [5, 15) placed at composition 2.
	id, err := st.AddSegment(clipSeg(video, 5, 15, 2))
	require.NoError(t, err)

	leftID, rightID, err := st.SplitSegment(id, 6)
	require.NoError(t, err)

	left, _ := st.Segment(leftID)
	right, _ := st.Segment(rightID)
	assert.Equal(t, 5.0, left.SourceIn)
	assert.Equal(t, 9.0, left.SourceOut) // 5 + (6 - 2)
	assert.Equal(t, 9.0, right.SourceIn)
	assert.Equal(t, 15.0, right.SourceOut)
	assert.Equal(t, 6.0, right.Start)
}

func TestStore_SplitSegment_NotInterior(t *testing.T) {
	st, video, _ := newTestStore(t)
	id, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)

	for _, at := range []float64{-1, 0, 0.05, 0.1, 9.95, 10, 11} {
		_, _, err := st.SplitSegment(id, at)
		assert.ErrorIs(t, err, ErrSplit, "split at %v", at)
	}

	// The original survives every rejected split.
	_, err = st.Segment(id)
	assert.NoError(t, err)
}

func TestStore_Tracks(t *testing.T) {
	st, video, audio := newTestStore(t)

	// Last track of a kind cannot be removed.
	err := st.RemoveTrack(video)
	assert.ErrorIs(t, err, ErrLastTrack)

	video2 := st.AddTrack(TrackVideo)
	assert.Equal(t, 1, video2.Index)

	// Non-empty tracks cannot be removed.
	id, err := st.AddSegment(clipSeg(video2.ID, 0, 10, 0))
	require.NoError(t, err)
	err = st.RemoveTrack(video2.ID)
	assert.ErrorIs(t, err, ErrTrackNotEmpty)

	require.NoError(t, st.RemoveSegment(id))
	require.NoError(t, st.RemoveTrack(video2.ID))

	// Render order: video before audio.
	tracks := st.Tracks()
	require.Len(t, tracks, 2)
	assert.Equal(t, TrackVideo, tracks[0].Kind)
	assert.Equal(t, TrackAudio, tracks[1].Kind)
	_ = audio
}

func TestStore_LockedTrack(t *testing.T) {
	st, video, _ := newTestStore(t)
	id, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)

	require.NoError(t, st.SetLocked(video, true))

	_, err = st.AddSegment(clipSeg(video, 0, 10, 20))
	assert.ErrorIs(t, err, ErrTrackLocked)
	assert.ErrorIs(t, st.RemoveSegment(id), ErrTrackLocked)
	assert.ErrorIs(t, st.MoveSegment(id, 5, video), ErrTrackLocked)
	assert.ErrorIs(t, st.TrimLeft(id, 1), ErrTrackLocked)
	assert.ErrorIs(t, st.TrimRight(id, 8), ErrTrackLocked)
	_, _, err = st.SplitSegment(id, 5)
	assert.ErrorIs(t, err, ErrTrackLocked)
	assert.ErrorIs(t, st.ToggleEnabled(id), ErrTrackLocked)

	require.NoError(t, st.SetLocked(video, false))
	assert.NoError(t, st.MoveSegment(id, 5, video))
}

func TestStore_NudgeSelected(t *testing.T) {
	st, video, _ := newTestStore(t)
	a, err := st.AddSegment(clipSeg(video, 0, 5, 0))
	require.NoError(t, err)
	b, err := st.AddSegment(clipSeg(video, 0, 5, 5))
	require.NoError(t, err)

	// Shifting both right by 2 must not make them collide with each other.
	require.NoError(t, st.NudgeSelected([]string{a, b}, 2))
	startA, _ := st.CompositionStart(a)
	startB, _ := st.CompositionStart(b)
	assert.Equal(t, 2.0, startA)
	assert.Equal(t, 7.0, startB)

	// A nudge that would push a member before t=0 rolls everything back.
	err = st.NudgeSelected([]string{a, b}, -3)
	assert.ErrorIs(t, err, ErrBounds)
	startA, _ = st.CompositionStart(a)
	startB, _ = st.CompositionStart(b)
	assert.Equal(t, 2.0, startA, "rolled back")
	assert.Equal(t, 7.0, startB, "rolled back")
}

func TestStore_DeleteSelected(t *testing.T) {
	st, video, _ := newTestStore(t)
	a, _ := st.AddSegment(clipSeg(video, 0, 5, 0))
	b, _ := st.AddSegment(clipSeg(video, 0, 5, 5))

	n := st.DeleteSelected([]string{a, b, "missing"})
	assert.Equal(t, 2, n)

	segs, err := st.SegmentsInOrder(video)
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestStore_TotalDuration(t *testing.T) {
	st, video, _ := newTestStore(t)

	// Empty timeline still presents the minimum editable span.
	assert.Equal(t, MinTimelineSpan, st.TotalDuration())

	_, err := st.AddSegment(clipSeg(video, 0, 30, 70))
	require.NoError(t, err)
	assert.Equal(t, 100.0+DefaultTrailingMargin, st.TotalDuration())
}

func TestStore_SnapshotRestore(t *testing.T) {
	st, video, _ := newTestStore(t)
	id, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)

	snap := st.Snapshot()
	require.NoError(t, st.MoveSegment(id, 20, video))
	_, _, err = st.SplitSegment(id, 25)
	require.NoError(t, err)

	st.Restore(snap)

	seg, err := st.Segment(id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, seg.Start)
	segs, err := st.SegmentsInOrder(video)
	require.NoError(t, err)
	assert.Len(t, segs, 1)
}

// assertNoOverlaps checks invariant 1 over the whole store.
func assertNoOverlaps(t *testing.T, st *Store) {
	t.Helper()
	for _, tr := range st.Tracks() {
		segs, err := st.SegmentsInOrder(tr.ID)
		require.NoError(t, err)
		for i := range segs {
			for j := i + 1; j < len(segs); j++ {
				a, b := segs[i], segs[j]
				if !a.Enabled || !b.Enabled {
					continue
				}
				if !(a.End() <= b.Start || b.End() <= a.Start) {
					t.Errorf("track %s: %s [%v,%v) overlaps %s [%v,%v)",
						tr.ID, a.ID, a.Start, a.End(), b.ID, b.Start, b.End())
				}
			}
		}
	}
}

func TestStore_NonOverlapAfterMutationSequence(t *testing.T) {
	st, video, audio := newTestStore(t)
	video2 := st.AddTrack(TrackVideo)

	a, err := st.AddSegment(clipSeg(video, 0, 10, 0))
	require.NoError(t, err)
	b, err := st.AddSegment(clipSeg(video, 10, 20, 10))
	require.NoError(t, err)
	c, err := st.AddSegment(clipSeg(audio, 0, 15, 0))
	require.NoError(t, err)

	ops := []func() error{
		func() error { return st.MoveSegment(b, 25, video) },
		func() error { return st.TrimRight(a, 12) },
		func() error { return st.TrimLeft(b, 12) },
		func() error { return st.MoveSegment(a, 2, video2.ID) },
		func() error { return st.ToggleEnabled(c) },
		func() error { return st.ToggleEnabled(c) },
		func() error {
			_, _, err := st.SplitSegment(c, 7)
			return err
		},
		func() error { return st.MoveSegment(b, 0, video) },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			// Rejections are fine; partial application is not.
			t.Logf("op %d rejected: %v", i, err)
		}
		assertNoOverlaps(t, st)
	}
}
