package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the editor.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // focused items, active states
	Secondary lipgloss.Color // secondary accent (playhead, markers)

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Backgrounds
	BgBase   lipgloss.Color
	BgCursor lipgloss.Color

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Track lane colors
	VideoSegment lipgloss.Color
	AudioSegment lipgloss.Color
	Disabled     lipgloss.Color
	Selected     lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#e0af68"),

	FgBase:   lipgloss.Color("#c0caf5"),
	FgMuted:  lipgloss.Color("#787c99"),
	FgSubtle: lipgloss.Color("#51546e"),

	BgBase:   lipgloss.Color("#1a1b26"),
	BgCursor: lipgloss.Color("#2f3349"),

	Border:      lipgloss.Color("#51546e"),
	BorderFocus: lipgloss.Color("#7aa2f7"),

	VideoSegment: lipgloss.Color("#3d59a1"),
	AudioSegment: lipgloss.Color("#33635c"),
	Disabled:     lipgloss.Color("#3b3d57"),
	Selected:     lipgloss.Color("#e0af68"),

	Success: lipgloss.Color("#9ece6a"),
	Error:   lipgloss.Color("#f7768e"),
	Warning: lipgloss.Color("#e0af68"),
}

// Current returns the active theme.
func Current() Theme {
	return defaultTheme
}
