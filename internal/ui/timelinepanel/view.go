package timelinepanel

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lrousseau/montage/internal/timeline"
	"github.com/lrousseau/montage/internal/timescale"
	"github.com/lrousseau/montage/internal/ui/render"
	"github.com/lrousseau/montage/internal/ui/styles"
)

// SetClipNamer installs the function used to label segments with their
// source clip name. A nil namer leaves segments unlabeled.
func (m *Model) SetClipNamer(namer func(clipID string) string) {
	m.clipName = namer
}

// View renders the panel: ruler, separator, one lane per track, padded to
// the panel height.
func (m Model) View() string {
	laneW := m.laneWidth()
	if laneW <= 0 || m.height < 4 {
		return ""
	}
	innerH := m.height - 2

	lines := make([]string, 0, innerH)
	lines = append(lines, m.rulerLine(laneW))
	lines = append(lines, gutterPad()+render.Separator(laneW))

	for _, tr := range m.store.Tracks() {
		lines = append(lines, m.laneLines(tr, laneW)...)
	}

	inner := m.width - 2
	for len(lines) < innerH {
		lines = append(lines, render.EmptyLine(inner))
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	return styles.PanelStyle(m.focused).
		Width(inner).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

func gutterPad() string {
	return strings.Repeat(" ", gutterWidth)
}

// rulerLine draws time markers at the zoom's ruler interval plus the
// playhead caret.
func (m Model) rulerLine(laneW int) string {
	theme := styles.Current()
	cells := make([]string, laneW)
	for i := range cells {
		cells[i] = " "
	}

	interval := m.zoom.RulerInterval()
	first := math.Ceil(timescale.PixelsToTime(float64(m.scrollPx), m.zoom)/interval) * interval
	for t := first; ; t += interval {
		col := m.timeToCol(t)
		if col >= laneW {
			break
		}
		if col < 0 {
			continue
		}
		label := formatRulerTime(t)
		for j, r := range label {
			if col+j >= laneW {
				break
			}
			cells[col+j] = string(r)
		}
	}

	line := strings.Join(cells, "")
	line = lipgloss.NewStyle().Foreground(theme.FgMuted).Render(line)

	// Playhead caret overlays the ruler.
	phCol := m.timeToCol(m.playhead)
	if phCol >= 0 && phCol < laneW {
		plain := strings.Join(cells, "")
		left := lipgloss.NewStyle().Foreground(theme.FgMuted).Render(plain[:phCol])
		caret := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("▼")
		right := ""
		if phCol+1 < laneW {
			right = lipgloss.NewStyle().Foreground(theme.FgMuted).Render(plain[phCol+1:])
		}
		line = left + caret + right
	}

	zoomTag := fmt.Sprintf("%5s ", m.zoom)
	gutter := lipgloss.NewStyle().Foreground(theme.FgSubtle).Render(render.TruncateAndPad(zoomTag, gutterWidth))
	return gutter + line
}

func formatRulerTime(t float64) string {
	sec := int(math.Round(t))
	if sec < 60 {
		return fmt.Sprintf("|%d", sec)
	}
	return fmt.Sprintf("|%d:%02d", sec/60, sec%60)
}

// laneLines renders trackHeight rows for one track. The first row carries
// clip names inside the segment blocks.
func (m Model) laneLines(tr timeline.Track, laneW int) []string {
	segs, err := m.store.SegmentsInOrder(tr.ID)
	if err != nil {
		segs = nil
	}

	rows := make([]string, m.trackHeight)
	for row := range m.trackHeight {
		var b strings.Builder
		col := 0
		for _, seg := range segs {
			start := m.timeToCol(seg.Start)
			end := m.timeToCol(seg.End())
			if end <= 0 || start >= laneW {
				continue
			}
			if start < 0 {
				start = 0
			}
			if end > laneW {
				end = laneW
			}
			if end <= start {
				continue
			}
			if start > col {
				b.WriteString(strings.Repeat(" ", start-col))
			}
			b.WriteString(m.segmentBlock(seg, tr.Kind, end-start, row == 0))
			col = end
		}
		if col < laneW {
			b.WriteString(strings.Repeat(" ", laneW-col))
		}
		rows[row] = m.laneGutter(tr, row) + b.String()
	}
	return rows
}

// laneGutter renders the track label column: kind+index on the first row,
// mute and lock flags on the second.
func (m Model) laneGutter(tr timeline.Track, row int) string {
	theme := styles.Current()
	var text string
	switch row {
	case 0:
		prefix := "V"
		if tr.Kind == timeline.TrackAudio {
			prefix = "A"
		}
		text = fmt.Sprintf(" %s%d", prefix, tr.Index+1)
	case 1:
		var flags []string
		if tr.Muted {
			flags = append(flags, "M")
		}
		if tr.Locked {
			flags = append(flags, "L")
		}
		text = " " + strings.Join(flags, " ")
	}
	st := lipgloss.NewStyle().Foreground(theme.FgMuted)
	if tr.Muted || tr.Locked {
		st = st.Foreground(theme.Warning)
	}
	return st.Render(render.TruncateAndPad(text, gutterWidth))
}

// segmentBlock renders one segment at the given cell width.
func (m Model) segmentBlock(seg timeline.Segment, kind timeline.TrackKind, width int, labelRow bool) string {
	theme := styles.Current()

	bg := theme.VideoSegment
	if kind == timeline.TrackAudio {
		bg = theme.AudioSegment
	}
	if !seg.Enabled {
		bg = theme.Disabled
	}

	st := lipgloss.NewStyle().Background(bg).Foreground(theme.FgBase)
	if m.sel.IsSelected(seg.ID) {
		st = st.Background(theme.Selected).Foreground(theme.BgBase)
		if seg.ID == m.sel.Primary() {
			st = st.Bold(true)
		}
	}

	text := ""
	if labelRow && m.clipName != nil {
		text = m.clipName(seg.ClipID)
	}
	return st.Render(render.TruncateAndPad(text, width))
}

func (m Model) timeToCol(t float64) int {
	return int(math.Round(timescale.TimeToPixels(t, m.zoom))) - m.scrollPx
}
