package timescale

import "math"

// GridInterval is the snap grid spacing in seconds. Snapping happens in
// time-space: the grid does not change with zoom level.
const GridInterval = 0.5

// BoundarySnapWindow is how close (in seconds) a proposed time must be to a
// neighboring segment boundary for the boundary to win over the grid.
const BoundarySnapWindow = 0.25

// Snap quantizes t to the nearest grid multiple. Negative inputs snap to 0.
// The interactive preview and the committed position both go through this
// function, so what the user sees during a drag is exactly what lands.
func Snap(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Round(t/GridInterval) * GridInterval
}

// SnapWithBoundaries quantizes t to the nearest grid multiple unless a
// boundary is within BoundarySnapWindow, in which case the closest such
// boundary wins. Boundaries are typically the composition start/end times of
// neighboring segments on the target track.
func SnapWithBoundaries(t float64, boundaries []float64) float64 {
	best := math.Inf(1)
	bestDist := math.Inf(1)
	for _, b := range boundaries {
		d := math.Abs(t - b)
		if d < bestDist {
			best = b
			bestDist = d
		}
	}
	if bestDist <= BoundarySnapWindow {
		if best < 0 {
			return 0
		}
		return best
	}
	return Snap(t)
}
