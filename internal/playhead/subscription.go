package playhead

const eventBufferSize = 32

// StateChange is emitted when the transport state changes.
type StateChange struct {
	Previous State
	Current  State
}

// PositionChange is emitted on each playhead tick and after a seek.
type PositionChange struct {
	Position float64
}

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged    <-chan StateChange
	PositionChanged <-chan PositionChange
	Done            <-chan struct{}

	stateCh    chan StateChange
	positionCh chan PositionChange
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.PositionChanged = s.positionCh
	s.Done = s.doneCh
	return s
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendPosition sends a position event (non-blocking).
func (s *Subscription) sendPosition(pos float64) {
	select {
	case s.positionCh <- PositionChange{Position: pos}:
	default:
	}
}
