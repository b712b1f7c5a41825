// Package timescale provides pure functions for converting between
// composition time and horizontal screen position.
package timescale

// PixelsPerSecond is the base horizontal scale at 1x zoom.
//
// The timeline panel and the ruler both derive column positions from this
// constant; using any other value in one of them desynchronizes segments
// from their time markers.
const PixelsPerSecond = 10.0

// TimeToPixels converts a time in seconds to a horizontal pixel offset at
// the given zoom level.
func TimeToPixels(t float64, zoom Zoom) float64 {
	return t * PixelsPerSecond * zoom.Scale()
}

// PixelsToTime converts a horizontal pixel offset back to seconds at the
// given zoom level.
func PixelsToTime(px float64, zoom Zoom) float64 {
	return px / (PixelsPerSecond * zoom.Scale())
}

// Zoom is a discrete zoom level.
type Zoom int

const (
	ZoomFit Zoom = iota
	Zoom2x
	Zoom4x
	Zoom8x
)

// Scale returns the zoom multiplier applied on top of PixelsPerSecond.
func (z Zoom) Scale() float64 {
	switch z {
	case Zoom2x:
		return 2
	case Zoom4x:
		return 4
	case Zoom8x:
		return 8
	default:
		return 1
	}
}

// RulerInterval returns the spacing between ruler markers, in seconds.
// Wider zoom levels get denser markers.
func (z Zoom) RulerInterval() float64 {
	switch z {
	case Zoom2x:
		return 5
	case Zoom4x:
		return 2
	case Zoom8x:
		return 1
	default:
		return 10
	}
}

// String returns the zoom level name.
func (z Zoom) String() string {
	switch z {
	case ZoomFit:
		return "Fit"
	case Zoom2x:
		return "2x"
	case Zoom4x:
		return "4x"
	case Zoom8x:
		return "8x"
	default:
		return "Unknown"
	}
}

// Next returns the next zoom level, clamped at the maximum.
func (z Zoom) Next() Zoom {
	if z >= Zoom8x {
		return Zoom8x
	}
	return z + 1
}

// Prev returns the previous zoom level, clamped at the minimum.
func (z Zoom) Prev() Zoom {
	if z <= ZoomFit {
		return ZoomFit
	}
	return z - 1
}
