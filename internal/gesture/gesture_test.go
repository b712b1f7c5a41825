package gesture

import (
	"testing"

	"github.com/lrousseau/montage/internal/timeline"
	"github.com/lrousseau/montage/internal/timescale"
)

type fakeClips map[string]float64

func (f fakeClips) ClipDuration(id string) (float64, bool) {
	d, ok := f[id]
	return d, ok
}

func fixture(t *testing.T) (*timeline.Store, string, string) {
	t.Helper()
	st := timeline.New(fakeClips{"clip-a": 60})
	var video, audio string
	for _, tr := range st.Tracks() {
		switch tr.Kind {
		case timeline.TrackVideo:
			video = tr.ID
		case timeline.TrackAudio:
			audio = tr.ID
		}
	}
	return st, video, audio
}

func addSeg(t *testing.T, st *timeline.Store, track string, in, out, start float64) string {
	t.Helper()
	id, err := st.AddSegment(timeline.Segment{
		ClipID: "clip-a", TrackID: track,
		SourceIn: in, SourceOut: out, Start: start, Enabled: true,
	})
	if err != nil {
		t.Fatalf("AddSegment: %v", err)
	}
	return id
}

// layoutFor builds a two-band layout: the video track on rows [0,4), audio
// on rows [4,8).
func layoutFor(video, audio string) TrackLayout {
	return TrackLayout{Bands: []Band{
		{TrackID: video, Top: 0, Height: 4},
		{TrackID: audio, Top: 4, Height: 4},
	}}
}

func TestTrackLayout_TrackAt(t *testing.T) {
	l := layoutFor("v", "a")

	tests := []struct {
		y    int
		want string
	}{
		{-5, "v"}, // above the stack clamps to the first track
		{0, "v"},
		{3, "v"},
		{4, "a"},
		{7, "a"},
		{99, "a"}, // below the stack clamps to the last track
	}
	for _, tt := range tests {
		got, ok := l.TrackAt(tt.y)
		if !ok || got != tt.want {
			t.Errorf("TrackAt(%d) = %q, %v, want %q", tt.y, got, ok, tt.want)
		}
	}

	if _, ok := (TrackLayout{}).TrackAt(0); ok {
		t.Error("empty layout should report no track")
	}
}

func TestDrag_SnapsToGrid(t *testing.T) {
	// Spec scenario: a pixel delta corresponding to 2.3s with a 0.5s grid
	// commits at 2.5s, not 2.3s.
	st, video, audio := fixture(t)
	id := addSeg(t, st, video, 0, 10, 0)

	d, err := BeginDrag(st, id, 1)
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	// 2.3s at ZoomFit is 23 pixels.
	dx := timescale.TimeToPixels(2.3, timescale.ZoomFit)
	if err := d.Update(dx, 1, timescale.ZoomFit, layoutFor(video, audio)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	d.Commit()

	start, _ := st.CompositionStart(id)
	if start != 2.5 {
		t.Errorf("committed start = %v, want 2.5", start)
	}
}

func TestDrag_Deterministic(t *testing.T) {
	st, video, audio := fixture(t)
	id := addSeg(t, st, video, 0, 10, 0)
	layout := layoutFor(video, audio)

	run := func() float64 {
		d, err := BeginDrag(st, id, 1)
		if err != nil {
			t.Fatalf("BeginDrag: %v", err)
		}
		dx := timescale.TimeToPixels(7.3, timescale.Zoom2x)
		if err := d.Update(dx, 1, timescale.Zoom2x, layout); err != nil {
			t.Fatalf("Update: %v", err)
		}
		d.Commit()
		start, _ := st.CompositionStart(id)
		// Reset for the next run.
		if err := st.MoveSegment(id, 0, video); err != nil {
			t.Fatalf("reset: %v", err)
		}
		return start
	}

	first := run()
	second := run()
	if first != second {
		t.Errorf("same gesture produced %v then %v", first, second)
	}
}

func TestDrag_SnapsToNeighborBoundary(t *testing.T) {
	st, video, audio := fixture(t)
	addSeg(t, st, video, 0, 10, 0) // neighbor ends at 10
	id := addSeg(t, st, video, 0, 5, 20)

	d, err := BeginDrag(st, id, 1)
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	// Raw target 10.2s: within the boundary window of the neighbor's end,
	// closer to it than to the 10.0 grid line... both are candidates; the
	// boundary at 10 wins over grid 10 trivially, landing flush.
	dx := timescale.TimeToPixels(10.2-20, timescale.ZoomFit)
	if err := d.Update(dx, 1, timescale.ZoomFit, layoutFor(video, audio)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	d.Commit()

	start, _ := st.CompositionStart(id)
	if start != 10 {
		t.Errorf("start = %v, want 10 (butted against neighbor)", start)
	}
}

func TestDrag_CrossKindFallsBackToSameTrack(t *testing.T) {
	// Spec scenario: dragging a video segment down past the video/audio
	// boundary by more than 30% of a track's height falls back to a
	// same-track time-only move.
	st, video, audio := fixture(t)
	id := addSeg(t, st, video, 0, 10, 0)
	layout := layoutFor(video, audio)

	d, err := BeginDrag(st, id, 1)
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	// Pointer dives into the audio band: vertical displacement 5 rows,
	// well past 30% of the 4-row track height.
	dx := timescale.TimeToPixels(3.0, timescale.ZoomFit)
	if err := d.Update(dx, 6, timescale.ZoomFit, layout); err != nil {
		t.Fatalf("Update: %v", err)
	}
	d.Commit()

	trackID, _ := st.TrackFor(id)
	if trackID != video {
		t.Error("cross-kind drag changed the track reference")
	}
	start, _ := st.CompositionStart(id)
	if start != 3 {
		t.Errorf("start = %v, want 3 (time-only move applied)", start)
	}
}

func TestDrag_CrossTrackSameKind(t *testing.T) {
	st, video, audio := fixture(t)
	video2 := st.AddTrack(timeline.TrackVideo)
	id := addSeg(t, st, video, 0, 10, 0)

	layout := TrackLayout{Bands: []Band{
		{TrackID: video, Top: 0, Height: 4},
		{TrackID: video2.ID, Top: 4, Height: 4},
		{TrackID: audio, Top: 8, Height: 4},
	}}

	d, err := BeginDrag(st, id, 1)
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := d.Update(0, 5, timescale.ZoomFit, layout); err != nil {
		t.Fatalf("Update: %v", err)
	}
	d.Commit()

	trackID, _ := st.TrackFor(id)
	if trackID != video2.ID {
		t.Errorf("segment on %s, want the second video track", trackID)
	}
}

func TestDrag_SmallWobbleKeepsTrack(t *testing.T) {
	st, video, _ := fixture(t)
	video2 := st.AddTrack(timeline.TrackVideo)
	id := addSeg(t, st, video, 0, 10, 0)

	layout := TrackLayout{Bands: []Band{
		{TrackID: video, Top: 0, Height: 4},
		{TrackID: video2.ID, Top: 4, Height: 4},
	}}

	// Start near the band edge: the pointer crosses into the next band but
	// moves only 1 row, under 30% of the 4-row height.
	d, err := BeginDrag(st, id, 3)
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := d.Update(0, 4, timescale.ZoomFit, layout); err != nil {
		t.Fatalf("Update: %v", err)
	}
	d.Commit()

	trackID, _ := st.TrackFor(id)
	if trackID != video {
		t.Error("1-row wobble should not change track membership")
	}
}

func TestDrag_Abort(t *testing.T) {
	st, video, audio := fixture(t)
	id := addSeg(t, st, video, 0, 10, 5)
	layout := layoutFor(video, audio)

	d, err := BeginDrag(st, id, 1)
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	dx := timescale.TimeToPixels(10, timescale.ZoomFit)
	if err := d.Update(dx, 1, timescale.ZoomFit, layout); err != nil {
		t.Fatalf("Update: %v", err)
	}
	d.Abort()

	start, _ := st.CompositionStart(id)
	if start != 5 {
		t.Errorf("start = %v, want 5 (restored)", start)
	}
}

func TestDrag_RejectedPreviewKeepsLastValid(t *testing.T) {
	st, video, audio := fixture(t)
	addSeg(t, st, video, 0, 10, 10)
	id := addSeg(t, st, video, 0, 5, 0)
	layout := layoutFor(video, audio)

	d, err := BeginDrag(st, id, 1)
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	// First preview: valid position at 2.
	if err := d.Update(timescale.TimeToPixels(2, timescale.ZoomFit), 1, timescale.ZoomFit, layout); err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Second preview: would overlap the neighbor; rejected.
	if err := d.Update(timescale.TimeToPixels(12, timescale.ZoomFit), 1, timescale.ZoomFit, layout); err == nil {
		t.Fatal("expected overlap rejection")
	}
	d.Commit()

	start, _ := st.CompositionStart(id)
	if start != 2 {
		t.Errorf("start = %v, want 2 (last valid preview)", start)
	}
}

func TestDrag_LockedTrack(t *testing.T) {
	st, video, _ := fixture(t)
	id := addSeg(t, st, video, 0, 10, 0)
	if err := st.SetLocked(video, true); err != nil {
		t.Fatalf("SetLocked: %v", err)
	}

	if _, err := BeginDrag(st, id, 1); err == nil {
		t.Error("BeginDrag on a locked track should fail")
	}
}

func TestTrim_LeftEdge(t *testing.T) {
	st, video, _ := fixture(t)
	id := addSeg(t, st, video, 5, 15, 10)

	tr, err := BeginTrim(st, id, EdgeLeft)
	if err != nil {
		t.Fatalf("BeginTrim: %v", err)
	}
	// Drag the left edge 2s to the right.
	if err := tr.Update(timescale.TimeToPixels(2, timescale.ZoomFit), timescale.ZoomFit); err != nil {
		t.Fatalf("Update: %v", err)
	}
	tr.Commit()

	seg, _ := st.Segment(id)
	if seg.SourceIn != 7 || seg.Start != 12 {
		t.Errorf("SourceIn = %v Start = %v, want 7, 12", seg.SourceIn, seg.Start)
	}
	if seg.End() != 20 {
		t.Errorf("End = %v, want 20 (fixed)", seg.End())
	}
}

func TestTrim_DeltasFromGestureStart(t *testing.T) {
	st, video, _ := fixture(t)
	id := addSeg(t, st, video, 5, 15, 10)

	tr, err := BeginTrim(st, id, EdgeRight)
	if err != nil {
		t.Fatalf("BeginTrim: %v", err)
	}
	// Several previews; only the final displacement matters.
	for _, secs := range []float64{4, -2, 3} {
		if err := tr.Update(timescale.TimeToPixels(secs, timescale.ZoomFit), timescale.ZoomFit); err != nil {
			t.Fatalf("Update(%v): %v", secs, err)
		}
	}
	tr.Commit()

	seg, _ := st.Segment(id)
	if seg.SourceOut != 18 {
		t.Errorf("SourceOut = %v, want 18 (orig 15 + final 3)", seg.SourceOut)
	}
}

func TestTrim_Abort(t *testing.T) {
	st, video, _ := fixture(t)
	id := addSeg(t, st, video, 5, 15, 10)

	tr, err := BeginTrim(st, id, EdgeLeft)
	if err != nil {
		t.Fatalf("BeginTrim: %v", err)
	}
	if err := tr.Update(timescale.TimeToPixels(3, timescale.ZoomFit), timescale.ZoomFit); err != nil {
		t.Fatalf("Update: %v", err)
	}
	tr.Abort()

	seg, _ := st.Segment(id)
	if seg.SourceIn != 5 || seg.Start != 10 {
		t.Errorf("segment = %+v, want restored to SourceIn 5, Start 10", seg)
	}
}
