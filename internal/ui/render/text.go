// Package render provides text rendering utilities for TUI components.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters and replaces invalid UTF-8 so clip
// names from arbitrary file systems cannot break the terminal layout.
func Sanitize(s string) string {
	clean := true
	for i := range len(s) {
		if s[i] < 0x20 && s[i] != '\t' || s[i] >= 0x80 {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			i++
			continue
		}
		if r != '\t' && unicode.IsControl(r) {
			i += size
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// Truncate shortens a string to fit within maxWidth, adding an ellipsis if
// truncated. Uses runewidth for proper handling of wide characters.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// TruncateAndPad truncates s to width and pads it with spaces to exactly
// that display width.
func TruncateAndPad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width), width)
}

// Separator returns a horizontal rule of the given width.
func Separator(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("─", width)
}

// EmptyLine returns a blank line of the given width.
func EmptyLine(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}
