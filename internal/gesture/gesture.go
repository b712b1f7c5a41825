// Package gesture turns pointer movement into validated timeline mutations.
// Each gesture snapshots the store when it begins; an abort rolls back to
// that snapshot, a commit keeps whatever the store accepted. The store
// itself rejects invalid intermediate positions, so a gesture can never
// leave partially-applied state behind.
//
// The active tool is an explicit input to the interaction layer: handlers
// receive it as a parameter, nothing here reads ambient editor state.
package gesture

// Tool is the editing tool driving the current gesture.
type Tool int

const (
	// ToolSelect selects, moves and trims segments.
	ToolSelect Tool = iota
	// ToolBlade splits the segment under the pointer.
	ToolBlade
)

// String returns the tool name.
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolBlade:
		return "Blade"
	default:
		return "Unknown"
	}
}

// trackChangeFraction is the share of a track's height the pointer must
// travel vertically before a drag changes track membership.
const trackChangeFraction = 0.3
