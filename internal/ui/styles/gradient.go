package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyGradient renders text with a horizontal color gradient, used for the
// application title in the header bar.
func ApplyGradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 0 {
		return ""
	}
	if len(clusters) == 1 {
		return lipgloss.NewStyle().Foreground(from).Bold(true).Render(text)
	}

	colors := blendColors(len(clusters), from, to)
	var b strings.Builder
	for i, cluster := range clusters {
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Bold(true).Render(cluster))
	}
	return b.String()
}

// blendColors interpolates n colors between from and to in Luv space.
func blendColors(n int, from, to lipgloss.Color) []lipgloss.Color {
	start := toColorful(from)
	end := toColorful(to)

	out := make([]lipgloss.Color, n)
	for i := range n {
		t := float64(i) / float64(n-1)
		out[i] = lipgloss.Color(start.BlendLuv(end, t).Hex())
	}
	return out
}

// toColorful parses a hex theme color, falling back to mid gray for
// anything it cannot parse (named ANSI colors, empty strings).
func toColorful(c lipgloss.Color) colorful.Color {
	cc, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return cc
}
