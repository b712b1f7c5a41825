// Package timelinepanel renders the track lanes, ruler and playhead, and
// resolves pointer positions back to segments for the gesture layer.
package timelinepanel

import (
	"math"

	"github.com/lrousseau/montage/internal/gesture"
	"github.com/lrousseau/montage/internal/timeline"
	"github.com/lrousseau/montage/internal/timescale"
)

// gutterWidth is the left column reserved for track labels.
const gutterWidth = 8

// headerRows is the number of rows above the first lane inside the panel:
// the ruler and its separator.
const headerRows = 2

// Zone classifies what part of a segment a pointer position hits.
type Zone int

const (
	ZoneEmpty Zone = iota
	ZoneBody
	ZoneLeftEdge
	ZoneRightEdge
)

// Model represents the timeline panel state.
type Model struct {
	store       *timeline.Store
	sel         *timeline.Selection
	zoom        timescale.Zoom
	playhead    float64
	scrollPx    int
	width       int
	height      int
	trackHeight int
	focused     bool
	clipName    func(clipID string) string
}

// New creates a timeline panel over the given store and selection.
func New(store *timeline.Store, sel *timeline.Selection, trackHeight int) Model {
	if trackHeight < 1 {
		trackHeight = 2
	}
	return Model{
		store:       store,
		sel:         sel,
		trackHeight: trackHeight,
	}
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetFocused sets whether the panel is focused.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the panel is focused.
func (m Model) IsFocused() bool {
	return m.focused
}

// Zoom returns the current zoom level.
func (m Model) Zoom() timescale.Zoom {
	return m.zoom
}

// ZoomIn moves to the next zoom level, keeping the playhead visible.
func (m *Model) ZoomIn() {
	m.setZoom(m.zoom.Next())
}

// ZoomOut moves to the previous zoom level, keeping the playhead visible.
func (m *Model) ZoomOut() {
	m.setZoom(m.zoom.Prev())
}

func (m *Model) setZoom(z timescale.Zoom) {
	if z == m.zoom {
		return
	}
	anchor := m.playhead
	m.zoom = z
	m.EnsureVisible(anchor)
}

// SetPlayhead moves the playhead marker and keeps it in view.
func (m *Model) SetPlayhead(t float64) {
	m.playhead = t
	m.EnsureVisible(t)
}

// Playhead returns the playhead time.
func (m Model) Playhead() float64 {
	return m.playhead
}

// ScrollBy shifts the visible window horizontally by a pixel delta.
func (m *Model) ScrollBy(dx int) {
	m.scrollPx += dx
	m.clampScroll()
}

// EnsureVisible scrolls just enough to bring the given time into view.
func (m *Model) EnsureVisible(t float64) {
	px := int(math.Round(timescale.TimeToPixels(t, m.zoom)))
	w := m.laneWidth()
	if w <= 0 {
		return
	}
	if px < m.scrollPx {
		m.scrollPx = px
	}
	if px >= m.scrollPx+w {
		m.scrollPx = px - w + 1
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxPx := int(math.Round(timescale.TimeToPixels(m.store.TotalDuration(), m.zoom)))
	w := m.laneWidth()
	if m.scrollPx > maxPx-w {
		m.scrollPx = maxPx - w
	}
	if m.scrollPx < 0 {
		m.scrollPx = 0
	}
}

func (m Model) laneWidth() int {
	return m.width - 2 - gutterWidth // border columns + label gutter
}

// TimeAtX converts a panel-content-relative column to composition time.
func (m Model) TimeAtX(x int) float64 {
	t := timescale.PixelsToTime(float64(m.scrollPx+x-gutterWidth), m.zoom)
	if t < 0 {
		return 0
	}
	return t
}

// Layout returns the vertical track bands for the gesture layer, in
// panel-content-relative rows.
func (m Model) Layout() gesture.TrackLayout {
	var bands []gesture.Band
	top := headerRows
	for _, tr := range m.store.Tracks() {
		bands = append(bands, gesture.Band{TrackID: tr.ID, Top: top, Height: m.trackHeight})
		top += m.trackHeight
	}
	return gesture.TrackLayout{Bands: bands}
}

// HitTest resolves a panel-content-relative position to the segment (and
// zone within it) under the pointer. The outermost columns of a segment
// act as its trim handles.
func (m Model) HitTest(x, y int) (segID string, zone Zone, trackID string) {
	id, ok := m.Layout().TrackAt(y)
	if !ok || y < headerRows || x < gutterWidth {
		return "", ZoneEmpty, ""
	}
	trackID = id

	t := m.TimeAtX(x)
	segs, err := m.store.SegmentsInOrder(trackID)
	if err != nil {
		return "", ZoneEmpty, trackID
	}

	// One column of grip on each edge.
	grip := timescale.PixelsToTime(1, m.zoom)
	for _, seg := range segs {
		if t < seg.Start || t >= seg.End() {
			continue
		}
		switch {
		case t < seg.Start+grip:
			return seg.ID, ZoneLeftEdge, trackID
		case t >= seg.End()-grip:
			return seg.ID, ZoneRightEdge, trackID
		default:
			return seg.ID, ZoneBody, trackID
		}
	}
	return "", ZoneEmpty, trackID
}
