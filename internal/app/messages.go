package app

import "github.com/lrousseau/montage/internal/playhead"

// PositionMsg carries a playhead position update from the player goroutine.
type PositionMsg struct {
	Position float64
}

// TransportStateMsg carries a transport state change from the player.
type TransportStateMsg struct {
	Previous playhead.State
	Current  playhead.State
}

// ExportDoneMsg reports the outcome of a background EDL export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// playerClosedMsg signals that the player subscription was closed.
type playerClosedMsg struct{}

// statusExpiredMsg clears a transient status message.
type statusExpiredMsg struct {
	seq int
}
