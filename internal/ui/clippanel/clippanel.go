// Package clippanel renders the imported clip catalog and tracks the
// cursor used to pick a clip for placement.
package clippanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/lrousseau/montage/internal/clips"
	"github.com/lrousseau/montage/internal/ui/render"
	"github.com/lrousseau/montage/internal/ui/styles"
)

// Model represents the clip panel state.
type Model struct {
	registry *clips.Registry
	cursor   int
	offset   int
	width    int
	height   int
	focused  bool
}

// New creates a clip panel over the given registry.
func New(registry *clips.Registry) Model {
	return Model{registry: registry}
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampCursor()
}

// SetFocused sets whether the panel is focused.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the panel is focused.
func (m Model) IsFocused() bool {
	return m.focused
}

// MoveUp moves the cursor up one clip.
func (m *Model) MoveUp() {
	m.cursor--
	m.clampCursor()
}

// MoveDown moves the cursor down one clip.
func (m *Model) MoveDown() {
	m.cursor++
	m.clampCursor()
}

// Selected returns the clip under the cursor.
func (m Model) Selected() (clips.Clip, bool) {
	all := m.registry.All()
	if m.cursor < 0 || m.cursor >= len(all) {
		return clips.Clip{}, false
	}
	return all[m.cursor], true
}

func (m *Model) clampCursor() {
	n := m.registry.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	rows := m.listRows()
	if rows <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m Model) listRows() int {
	return m.height - 4 // borders, title, separator
}

// View renders the clip list with name, duration and file size per row.
func (m Model) View() string {
	inner := m.width - 2
	if inner <= 0 || m.height < 4 {
		return ""
	}
	theme := styles.Current()

	var lines []string
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(render.TruncateAndPad(fmt.Sprintf(" Clips (%d)", m.registry.Len()), inner))
	lines = append(lines, title, render.Separator(inner))

	all := m.registry.All()
	rows := m.listRows()
	for i := m.offset; i < len(all) && i < m.offset+rows; i++ {
		lines = append(lines, m.clipLine(all[i], inner, i == m.cursor))
	}
	for len(lines) < m.height-2 {
		lines = append(lines, render.EmptyLine(inner))
	}

	return styles.PanelStyle(m.focused).
		Width(inner).
		Height(m.height - 2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) clipLine(c clips.Clip, width int, underCursor bool) string {
	theme := styles.Current()

	meta := fmt.Sprintf("%s %s", formatDuration(c.PlacementDuration()), humanize.Bytes(uint64(c.SizeBytes)))
	nameW := width - len(meta) - 3
	if nameW < 1 {
		nameW = 1
	}
	line := fmt.Sprintf(" %s  %s", render.TruncateAndPad(c.Name, nameW), meta)

	st := lipgloss.NewStyle().Foreground(theme.FgBase)
	if c.Kind == clips.KindAudio {
		st = st.Foreground(theme.FgMuted)
	}
	if underCursor {
		st = st.Background(theme.BgCursor).Bold(true)
		if m.focused {
			st = st.Foreground(theme.Primary)
		}
	}
	return st.Render(render.TruncateAndPad(line, width))
}

func formatDuration(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
