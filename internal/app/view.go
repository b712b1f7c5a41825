package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lrousseau/montage/internal/playhead"
	"github.com/lrousseau/montage/internal/ui/render"
	"github.com/lrousseau/montage/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.Clips.View(), m.Timeline.View())
	status := m.renderStatusBar()

	return header + "\n" + panels + "\n" + status
}

func (m Model) renderHeader() string {
	theme := styles.Current()

	title := styles.ApplyGradient(" MONTAGE ", theme.Primary, theme.Secondary)

	muted := lipgloss.NewStyle().Foreground(theme.FgMuted)
	info := muted.Render(fmt.Sprintf("  tool:%s  zoom:%s  %s  %s / %s",
		m.Tool,
		m.Timeline.Zoom(),
		m.transportLabel(),
		formatTime(m.Timeline.Playhead()),
		formatTime(m.Store.TotalDuration()),
	))

	line := title + info
	pad := m.Width - lipgloss.Width(line)
	if pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return line
}

func (m Model) transportLabel() string {
	theme := styles.Current()
	switch m.Player.State() {
	case playhead.StatePlaying:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("▶ playing")
	case playhead.StatePaused:
		return lipgloss.NewStyle().Foreground(theme.Warning).Render("⏸ paused")
	default:
		return lipgloss.NewStyle().Foreground(theme.FgSubtle).Render("■ stopped")
	}
}

func (m Model) renderStatusBar() string {
	theme := styles.Current()

	switch {
	case m.ErrorMsg != "":
		return lipgloss.NewStyle().Foreground(theme.Error).
			Render(render.TruncateAndPad(" "+m.ErrorMsg, m.Width))
	case m.StatusMsg != "":
		return lipgloss.NewStyle().Foreground(theme.Success).
			Render(render.TruncateAndPad(" ✓ "+m.StatusMsg, m.Width))
	default:
		hint := " ? help · tab switch panel · q quit"
		return lipgloss.NewStyle().Foreground(theme.FgSubtle).
			Render(render.TruncateAndPad(hint, m.Width))
	}
}

func (m Model) renderHelp() string {
	theme := styles.Current()
	keyStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.FgBase)

	var b strings.Builder
	b.WriteString(styles.ApplyGradient(" MONTAGE ", theme.Primary, theme.Secondary))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.FgMuted).Render(" key bindings"))
	b.WriteString("\n\n")

	for _, binding := range m.Keys.helpBindings() {
		h := binding.Help()
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(render.TruncateAndPad(h.Key, 8)),
			descStyle.Render(h.Desc)))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.FgSubtle).Render("  press any key to close"))
	return b.String()
}

func formatTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	tenths := int((sec - float64(total)) * 10)
	return fmt.Sprintf("%d:%02d.%d", total/60, total%60, tenths)
}
