package timeline

// MinDuration is the minimum playable span of a segment, in seconds.
// Trims and splits that would produce anything shorter are rejected.
const MinDuration = 0.1

// splitMargin keeps split points strictly inside a segment so neither child
// can end up degenerate.
const splitMargin = 0.1

// Segment is a placed span of source-clip content on a track.
//
// Start is the authoritative composition position. It is never derived by
// accumulating the durations of prior segments: every constructor and every
// mutation sets it explicitly, so there is no "unset" sentinel to interpret.
type Segment struct {
	ID      string
	ClipID  string
	TrackID string

	// Trim window into the source clip, in seconds.
	SourceIn  float64
	SourceOut float64

	// Start is the composition-start time in seconds, >= 0.
	Start float64

	Enabled bool

	// Params carries per-segment effect/transform values. The composition
	// core passes them through untouched; only the render collaborator
	// interprets them.
	Params map[string]float64
}

// Duration returns the played span in seconds.
func (s Segment) Duration() float64 {
	return s.SourceOut - s.SourceIn
}

// End returns the composition-end time.
func (s Segment) End() float64 {
	return s.Start + s.Duration()
}

// overlaps reports whether two segments occupy intersecting composition
// spans. Callers are responsible for only comparing enabled segments on the
// same track.
func overlaps(a, b Segment) bool {
	return !(a.End() <= b.Start || b.End() <= a.Start)
}

// cloneParams copies the params map so stored segments never alias caller
// memory.
func cloneParams(p map[string]float64) map[string]float64 {
	if p == nil {
		return nil
	}
	out := make(map[string]float64, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
