// Package clips implements the source-clip registry: the collaborator that
// resolves a clip reference to its media duration and kind. The timeline
// core consults it for trim clamps; it never reads or decodes the media
// itself.
package clips

// Kind is the media kind of a source clip.
type Kind int

const (
	KindVideo Kind = iota
	KindAudio
	KindImage
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "Video"
	case KindAudio:
		return "Audio"
	case KindImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// DefaultImageDuration is the placement duration used for still images,
// which have no intrinsic length.
const DefaultImageDuration = 5.0

// Clip describes one registered source clip. Duration is in seconds;
// still images carry a zero Duration and are placed with
// DefaultImageDuration.
type Clip struct {
	ID        string
	Name      string
	Path      string
	Kind      Kind
	Duration  float64
	SizeBytes int64
}

// PlacementDuration returns the span a fresh segment of this clip occupies
// on the timeline.
func (c Clip) PlacementDuration() float64 {
	if c.Kind == KindImage || c.Duration <= 0 {
		return DefaultImageDuration
	}
	return c.Duration
}
