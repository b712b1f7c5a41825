package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lrousseau/montage/internal/autoedit"
	"github.com/lrousseau/montage/internal/clips"
	"github.com/lrousseau/montage/internal/composition"
	"github.com/lrousseau/montage/internal/errmsg"
	"github.com/lrousseau/montage/internal/gesture"
	"github.com/lrousseau/montage/internal/timeline"
	"github.com/lrousseau/montage/internal/timescale"
)

// clipPanelWidth is the preferred width of the clip catalog column.
const clipPanelWidth = 34

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case PositionMsg:
		m.Timeline.SetPlayhead(msg.Position)
		return m, waitForPosition(m.PlayerSub)

	case TransportStateMsg:
		return m, waitForState(m.PlayerSub)

	case playerClosedMsg:
		return m, nil

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.StatusMsg = ""
		}
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.ErrorMsg = errmsg.FormatWith(errmsg.OpExportEDL, msg.Path, msg.Err)
			return m, nil
		}
		cmd := m.setStatus("Exported " + msg.Path)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height

	clipW := clipPanelWidth
	if msg.Width < 3*clipPanelWidth {
		clipW = msg.Width / 3
	}
	contentH := msg.Height - 2 // header and status rows

	m.Clips.SetSize(clipW, contentH)
	m.Timeline.SetSize(msg.Width-clipW, contentH)

	// Timeline panel content origin: past the clip column and the panel
	// border, below the header row and the top border.
	m.timelineX = clipW + 1
	m.timelineY = 2
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, m.Keys.FocusNext):
		if m.Focus == FocusTimeline {
			m.Focus = FocusClips
		} else {
			m.Focus = FocusTimeline
		}
		m.Timeline.SetFocused(m.Focus == FocusTimeline)
		m.Clips.SetFocused(m.Focus == FocusClips)
		return m, nil

	case key.Matches(msg, m.Keys.PlayPause):
		m.Player.Toggle()
		return m, nil

	case key.Matches(msg, m.Keys.Stop):
		m.Player.Stop()
		return m, nil

	case key.Matches(msg, m.Keys.SeekBack):
		m.Player.SeekBy(-1)
		return m, nil

	case key.Matches(msg, m.Keys.SeekFwd):
		m.Player.SeekBy(1)
		return m, nil

	case key.Matches(msg, m.Keys.SeekHome):
		m.Player.SeekTo(0)
		return m, nil

	case key.Matches(msg, m.Keys.SeekEnd):
		m.Player.SeekTo(m.Store.TotalDuration())
		return m, nil

	case key.Matches(msg, m.Keys.ToolSelect):
		m.Tool = gesture.ToolSelect
		return m, nil

	case key.Matches(msg, m.Keys.ToolBlade):
		m.Tool = gesture.ToolBlade
		return m, nil

	case key.Matches(msg, m.Keys.ZoomIn):
		m.Timeline.ZoomIn()
		return m, nil

	case key.Matches(msg, m.Keys.ZoomOut):
		m.Timeline.ZoomOut()
		return m, nil

	case key.Matches(msg, m.Keys.AutoArrange):
		return m.handleAutoArrange()

	case key.Matches(msg, m.Keys.Export):
		cmd := m.startExport()
		return m, cmd
	}

	if m.Focus == FocusClips {
		return m.handleClipsKey(msg)
	}
	return m.handleTimelineKey(msg)
}

func (m Model) handleClipsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.CursorUp):
		m.Clips.MoveUp()
	case key.Matches(msg, m.Keys.CursorDown):
		m.Clips.MoveDown()
	case key.Matches(msg, m.Keys.Place):
		m.placeSelectedClip()
	}
	return m, nil
}

func (m Model) handleTimelineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Place):
		m.placeSelectedClip()

	case key.Matches(msg, m.Keys.Split):
		m.splitAtPlayhead()

	case key.Matches(msg, m.Keys.TrimLeft):
		m.trimToPlayhead(gesture.EdgeLeft)

	case key.Matches(msg, m.Keys.TrimRight):
		m.trimToPlayhead(gesture.EdgeRight)

	case key.Matches(msg, m.Keys.NudgeLeft):
		m.nudgeSelection(-timescale.GridInterval)

	case key.Matches(msg, m.Keys.NudgeRight):
		m.nudgeSelection(timescale.GridInterval)

	case key.Matches(msg, m.Keys.Toggle):
		m.toggleSelection()

	case key.Matches(msg, m.Keys.Delete):
		return m.deleteSelection()

	case key.Matches(msg, m.Keys.ClearSel):
		m.abortGesture()
		m.Selection.Clear()

	case key.Matches(msg, m.Keys.AddVideoTrack):
		m.Store.AddTrack(timeline.TrackVideo)
		m.commit(errmsg.OpTrackAdd)

	case key.Matches(msg, m.Keys.AddAudioTrack):
		m.Store.AddTrack(timeline.TrackAudio)
		m.commit(errmsg.OpTrackAdd)

	case key.Matches(msg, m.Keys.RemoveTrack):
		m.removePrimaryTrack()

	case key.Matches(msg, m.Keys.MuteTrack):
		m.togglePrimaryTrack(errmsg.OpTrackMute)

	case key.Matches(msg, m.Keys.LockTrack):
		m.togglePrimaryTrack(errmsg.OpTrackLock)
	}
	return m, nil
}

// commit projects the composition after a successful mutation, publishes
// the change and hands the fresh sequence to the player.
func (m *Model) commit(op errmsg.Op) {
	m.ErrorMsg = ""
	seq := composition.Project(m.Store)
	m.Notifier.Publish(composition.Change{Op: string(op), Seq: seq})
	m.Player.SetSequence(seq)
}

func (m *Model) fail(op errmsg.Op, err error) {
	m.ErrorMsg = errmsg.Format(op, err)
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.StatusMsg = text
	m.statusSeq++
	return clearStatusCmd(m.statusSeq)
}

// placeSelectedClip adds the clip under the catalog cursor at the snapped
// playhead position, on the first unlocked track of the matching kind.
func (m *Model) placeSelectedClip() {
	c, ok := m.Clips.Selected()
	if !ok {
		return
	}

	kind := timeline.TrackVideo
	if c.Kind == clips.KindAudio {
		kind = timeline.TrackAudio
	}
	var trackID string
	for _, tr := range m.Store.Tracks() {
		if tr.Kind == kind && !tr.Locked {
			trackID = tr.ID
			break
		}
	}
	if trackID == "" {
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpClipPlace, c.Name, timeline.ErrTrackLocked)
		return
	}

	id, err := m.Store.AddSegment(timeline.Segment{
		ClipID:    c.ID,
		TrackID:   trackID,
		SourceIn:  0,
		SourceOut: c.PlacementDuration(),
		Start:     timescale.Snap(m.Timeline.Playhead()),
		Enabled:   true,
	})
	if err != nil {
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpClipPlace, c.Name, err)
		return
	}
	m.Selection.Click(id)
	m.commit(errmsg.OpSegmentAdd)
}

func (m *Model) splitAtPlayhead() {
	id := m.Selection.Primary()
	if id == "" {
		return
	}
	left, right, err := m.Store.SplitSegment(id, m.Timeline.Playhead())
	if err != nil {
		m.fail(errmsg.OpSegmentSplit, err)
		return
	}
	m.Selection.Click(left)
	m.Selection.ToggleClick(right)
	m.commit(errmsg.OpSegmentSplit)
}

// trimToPlayhead moves the primary segment's edge to the playhead, subject
// to the usual trim clamps.
func (m *Model) trimToPlayhead(edge gesture.Edge) {
	id := m.Selection.Primary()
	if id == "" {
		return
	}
	seg, err := m.Store.Segment(id)
	if err != nil {
		m.fail(errmsg.OpSegmentTrim, err)
		return
	}

	ph := m.Timeline.Playhead()
	if edge == gesture.EdgeLeft {
		err = m.Store.TrimLeft(id, seg.SourceIn+(ph-seg.Start))
	} else {
		err = m.Store.TrimRight(id, seg.SourceOut+(ph-seg.End()))
	}
	if err != nil {
		m.fail(errmsg.OpSegmentTrim, err)
		return
	}
	m.commit(errmsg.OpSegmentTrim)
}

func (m *Model) nudgeSelection(delta float64) {
	if m.Selection.Len() == 0 {
		return
	}
	if err := m.Store.NudgeSelected(m.Selection.IDs(), delta); err != nil {
		m.fail(errmsg.OpSegmentNudge, err)
		return
	}
	m.commit(errmsg.OpSegmentNudge)
}

func (m *Model) toggleSelection() {
	if m.Selection.Len() == 0 {
		return
	}
	var firstErr error
	for _, id := range m.Selection.IDs() {
		if err := m.Store.ToggleEnabled(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.commit(errmsg.OpSegmentToggle)
	if firstErr != nil {
		m.fail(errmsg.OpSegmentToggle, firstErr)
	}
}

func (m Model) deleteSelection() (tea.Model, tea.Cmd) {
	if m.Selection.Len() == 0 {
		return m, nil
	}
	ids := m.Selection.IDs()
	n := m.Store.DeleteSelected(ids)
	for _, id := range ids {
		if _, err := m.Store.Segment(id); err != nil {
			m.Selection.Drop(id)
		}
	}
	m.commit(errmsg.OpSegmentDelete)
	cmd := m.setStatus(fmt.Sprintf("Deleted %d segment(s)", n))
	return m, cmd
}

// primaryTrack resolves the track owning the primary selected segment.
func (m Model) primaryTrack() (timeline.Track, bool) {
	id := m.Selection.Primary()
	if id == "" {
		return timeline.Track{}, false
	}
	trackID, err := m.Store.TrackFor(id)
	if err != nil {
		return timeline.Track{}, false
	}
	tr, err := m.Store.TrackInfo(trackID)
	if err != nil {
		return timeline.Track{}, false
	}
	return tr, true
}

func (m *Model) removePrimaryTrack() {
	tr, ok := m.primaryTrack()
	if !ok {
		return
	}
	if err := m.Store.RemoveTrack(tr.ID); err != nil {
		m.fail(errmsg.OpTrackRemove, err)
		return
	}
	m.commit(errmsg.OpTrackRemove)
}

func (m *Model) togglePrimaryTrack(op errmsg.Op) {
	tr, ok := m.primaryTrack()
	if !ok {
		return
	}
	var err error
	if op == errmsg.OpTrackLock {
		err = m.Store.SetLocked(tr.ID, !tr.Locked)
	} else {
		err = m.Store.SetMuted(tr.ID, !tr.Muted)
	}
	if err != nil {
		m.fail(op, err)
		return
	}
	m.commit(op)
}

func (m Model) handleAutoArrange() (tea.Model, tea.Cmd) {
	all := m.Registry.All()
	if len(all) == 0 {
		cmd := m.setStatus("No clips to arrange")
		return m, cmd
	}
	ids := make([]string, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}

	layoutCfg := m.Cfg.GetAutoLayoutConfig()
	placed, err := autoedit.Layout(m.Store, m.Registry, ids, autoedit.Options{
		Start:     timescale.Snap(m.Timeline.Playhead()),
		Gap:       layoutCfg.Gap,
		Alternate: *layoutCfg.Alternate,
	})
	if err != nil {
		m.fail(errmsg.OpAutoLayout, err)
		return m, nil
	}
	m.commit(errmsg.OpAutoLayout)
	cmd := m.setStatus(fmt.Sprintf("Placed %d clip(s)", len(placed)))
	return m, cmd
}

func (m *Model) startExport() tea.Cmd {
	dir := m.Cfg.GetExportConfig().Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			m.fail(errmsg.OpExportEDL, err)
			return nil
		}
		dir = wd
	}
	path := filepath.Join(dir, fmt.Sprintf("montage-%s.edl", time.Now().Format("20060102-150405")))

	seq := composition.Project(m.Store)
	reg := m.Registry
	name := func(clipID string) (string, string) {
		c, ok := reg.Get(clipID)
		if !ok {
			return "", ""
		}
		return c.Name, c.Path
	}
	return exportCmd(seq, path, "MONTAGE", m.Cfg.GetExportConfig().FPS, name)
}
