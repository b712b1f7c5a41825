package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lrousseau/montage/internal/errmsg"
	"github.com/lrousseau/montage/internal/gesture"
	"github.com/lrousseau/montage/internal/ui/timelinepanel"
)

// wheelScrollPx is the horizontal scroll step per wheel notch over the
// timeline.
const wheelScrollPx = 5

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.overTimeline(msg.X) {
			m.Timeline.ScrollBy(-wheelScrollPx)
		} else {
			m.Clips.MoveUp()
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.overTimeline(msg.X) {
			m.Timeline.ScrollBy(wheelScrollPx)
		} else {
			m.Clips.MoveDown()
		}
		return m, nil
	}

	cx := msg.X - m.timelineX
	cy := msg.Y - m.timelineY

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if !m.overTimeline(msg.X) {
			m.setFocus(FocusClips)
			return m, nil
		}
		m.setFocus(FocusTimeline)
		m.beginGesture(cx, cy, msg.Ctrl)
		return m, nil

	case tea.MouseActionMotion:
		m.updateGesture(cx, cy)
		return m, nil

	case tea.MouseActionRelease:
		m.endGesture()
		return m, nil
	}

	return m, nil
}

func (m Model) overTimeline(x int) bool {
	return x >= m.timelineX-1
}

func (m *Model) setFocus(f FocusTarget) {
	m.Focus = f
	m.Timeline.SetFocused(f == FocusTimeline)
	m.Clips.SetFocused(f == FocusClips)
}

// beginGesture starts a drag or trim on press, or handles a blade cut, a
// selection click or a playhead seek depending on the tool and hit zone.
func (m *Model) beginGesture(cx, cy int, toggle bool) {
	segID, zone, _ := m.Timeline.HitTest(cx, cy)

	if m.Tool == gesture.ToolBlade && segID != "" {
		left, right, err := m.Store.SplitSegment(segID, m.Timeline.TimeAtX(cx))
		if err != nil {
			m.fail(errmsg.OpSegmentSplit, err)
			return
		}
		m.Selection.Click(left)
		m.Selection.ToggleClick(right)
		m.commit(errmsg.OpSegmentSplit)
		return
	}

	switch zone {
	case timelinepanel.ZoneBody:
		if toggle {
			m.Selection.ToggleClick(segID)
		} else {
			m.Selection.Click(segID)
		}
		drag, err := gesture.BeginDrag(m.Store, segID, cy)
		if err != nil {
			m.fail(errmsg.OpSegmentMove, err)
			return
		}
		m.Drag = drag
		m.gestureStartX = cx

	case timelinepanel.ZoneLeftEdge, timelinepanel.ZoneRightEdge:
		m.Selection.Click(segID)
		edge := gesture.EdgeLeft
		if zone == timelinepanel.ZoneRightEdge {
			edge = gesture.EdgeRight
		}
		trim, err := gesture.BeginTrim(m.Store, segID, edge)
		if err != nil {
			m.fail(errmsg.OpSegmentTrim, err)
			return
		}
		m.Trim = trim
		m.gestureStartX = cx

	case timelinepanel.ZoneEmpty:
		if !toggle {
			m.Selection.Clear()
		}
		m.Player.SeekTo(m.Timeline.TimeAtX(cx))
	}
}

// updateGesture previews the active gesture. A rejected preview keeps the
// last valid position, so errors are not surfaced per frame.
func (m *Model) updateGesture(cx, cy int) {
	dx := float64(cx - m.gestureStartX)
	if m.Drag != nil {
		_ = m.Drag.Update(dx, cy, m.Timeline.Zoom(), m.Timeline.Layout())
	}
	if m.Trim != nil {
		_ = m.Trim.Update(dx, m.Timeline.Zoom())
	}
}

func (m *Model) endGesture() {
	if m.Drag != nil {
		m.Drag.Commit()
		m.Drag = nil
		m.commit(errmsg.OpSegmentMove)
	}
	if m.Trim != nil {
		m.Trim.Commit()
		m.Trim = nil
		m.commit(errmsg.OpSegmentTrim)
	}
}

// abortGesture rolls the store back to the pre-gesture snapshot.
func (m *Model) abortGesture() {
	if m.Drag != nil {
		m.Drag.Abort()
		m.Drag = nil
	}
	if m.Trim != nil {
		m.Trim.Abort()
		m.Trim = nil
	}
}
