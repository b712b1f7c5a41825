// Package export renders the projected sequence for external editors. The
// only owned format is a CMX 3600 EDL; everything else about rendering and
// persistence belongs to downstream collaborators.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/lrousseau/montage/internal/composition"
	"github.com/lrousseau/montage/internal/timeline"
)

// NameFunc resolves a clip id to the clip name and media path written into
// the EDL comments. Unknown clips get their id back so the event is never
// silently dropped.
type NameFunc func(clipID string) (name, path string)

// event is one EDL event: a clip entry from some lane with its channel tag.
type event struct {
	channel string
	seg     timeline.Segment
	start   float64
	end     float64
}

// RenderEDL renders the sequence as a CMX 3600 edit decision list. Video
// lanes map to V events and audio lanes to A events; gaps advance record
// time implicitly since entry times are absolute. Record in/out come from
// the projected entry, source in/out from the segment's trim window.
func RenderEDL(seq composition.Sequence, title string, frameRate float64, name NameFunc) string {
	fps := int(math.Round(frameRate))
	if fps <= 0 {
		fps = 30
	}
	isDropFrame := math.Abs(frameRate-29.97) < 0.01 || math.Abs(frameRate-59.94) < 0.01

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if isDropFrame {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	for i, ev := range collectEvents(seq) {
		clipName, mediaPath := ev.seg.ClipID, ""
		if name != nil {
			clipName, mediaPath = name(ev.seg.ClipID)
		}
		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s",
				i+1, "AX", ev.channel,
				Timecode(ev.seg.SourceIn, fps), Timecode(ev.seg.SourceOut, fps),
				Timecode(ev.start, fps), Timecode(ev.end, fps)),
			fmt.Sprintf("* FROM CLIP NAME:  %s", clipName),
		)
		if mediaPath != "" {
			lines = append(lines, fmt.Sprintf("* MEDIA PATH:  %s", mediaPath))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// collectEvents flattens the sequence's clip entries in lane order.
func collectEvents(seq composition.Sequence) []event {
	var out []event
	for _, lane := range seq.Lanes {
		channel := "V"
		if lane.Kind == timeline.TrackAudio {
			channel = "A"
		}
		for _, entry := range lane.Entries {
			if entry.Kind != composition.EntryClip {
				continue
			}
			out = append(out, event{
				channel: channel,
				seg:     entry.Segment,
				start:   entry.Start,
				end:     entry.End,
			})
		}
	}
	return out
}

// Timecode formats a time in seconds as HH:MM:SS:FF at the given frame
// rate.
func Timecode(sec float64, fps int) string {
	totalFrames := int(math.Round(sec * float64(fps)))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}
