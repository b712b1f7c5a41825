// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Segment operations
	OpSegmentAdd    Op = "add segment"
	OpSegmentMove   Op = "move segment"
	OpSegmentTrim   Op = "trim segment"
	OpSegmentSplit  Op = "split segment"
	OpSegmentDelete Op = "delete segment"
	OpSegmentToggle Op = "toggle segment"
	OpSegmentNudge  Op = "nudge selection"

	// Track operations
	OpTrackAdd    Op = "add track"
	OpTrackRemove Op = "remove track"
	OpTrackMute   Op = "mute track"
	OpTrackLock   Op = "lock track"

	// Clip catalog operations
	OpClipImport Op = "import clip"
	OpClipRemove Op = "remove clip"
	OpClipPlace  Op = "place clip on timeline"

	// Export operations
	OpExportEDL Op = "export edit decision list"

	// Layout operations
	OpAutoLayout Op = "auto-arrange clips"

	// Initialization
	OpInitialize Op = "initialize application"
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
