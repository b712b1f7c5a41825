// Package autoedit produces the initial batch of segments from imported
// clips. It decides nothing about which footage is worth keeping; callers
// hand it an ordered clip list and it only lays the clips out, with the
// store enforcing the resulting timeline's validity.
package autoedit

import (
	"fmt"

	"github.com/lrousseau/montage/internal/clips"
	"github.com/lrousseau/montage/internal/timeline"
)

// Options controls the generated layout.
type Options struct {
	// Start is the composition time of the first placed segment.
	Start float64
	// Gap is the spacing inserted between consecutive segments, in seconds.
	Gap float64
	// Alternate distributes segments round-robin across the tracks of each
	// kind instead of stacking everything on the first one.
	Alternate bool
}

// Layout places the given clips sequentially on the timeline via bulk
// AddSegment calls and returns the created segment ids. Video and image
// clips land on video tracks, audio clips on audio tracks, each kind
// advancing its own time cursor. The whole batch is atomic: any rejected
// placement rolls the store back and returns the error.
func Layout(st *timeline.Store, reg *clips.Registry, clipIDs []string, opts Options) ([]string, error) {
	if opts.Start < 0 {
		opts.Start = 0
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}

	var videoTracks, audioTracks []timeline.Track
	for _, tr := range st.Tracks() {
		switch tr.Kind {
		case timeline.TrackVideo:
			videoTracks = append(videoTracks, tr)
		case timeline.TrackAudio:
			audioTracks = append(audioTracks, tr)
		}
	}

	cursor := map[timeline.TrackKind]float64{
		timeline.TrackVideo: opts.Start,
		timeline.TrackAudio: opts.Start,
	}
	next := map[timeline.TrackKind]int{}

	snap := st.Snapshot()
	ids := make([]string, 0, len(clipIDs))

	for _, clipID := range clipIDs {
		clip, ok := reg.Get(clipID)
		if !ok {
			st.Restore(snap)
			return nil, fmt.Errorf("layout: clip %s: %w", clipID, timeline.ErrNotFound)
		}

		kind := timeline.TrackVideo
		tracks := videoTracks
		if clip.Kind == clips.KindAudio {
			kind = timeline.TrackAudio
			tracks = audioTracks
		}
		if len(tracks) == 0 {
			st.Restore(snap)
			return nil, fmt.Errorf("layout: no %s track for clip %s", kind, clip.Name)
		}

		track := tracks[0]
		if opts.Alternate {
			track = tracks[next[kind]%len(tracks)]
			next[kind]++
		}

		dur := clip.PlacementDuration()
		id, err := st.AddSegment(timeline.Segment{
			ClipID:    clip.ID,
			TrackID:   track.ID,
			SourceIn:  0,
			SourceOut: dur,
			Start:     cursor[kind],
			Enabled:   true,
		})
		if err != nil {
			st.Restore(snap)
			return nil, fmt.Errorf("layout: place %s: %w", clip.Name, err)
		}
		ids = append(ids, id)
		cursor[kind] += dur + opts.Gap
	}

	return ids, nil
}
