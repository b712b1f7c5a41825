package composition

const changeBufferSize = 16

// Change is emitted once per completed mutation (never per intermediate
// drag frame) and carries the freshly projected sequence.
type Change struct {
	// Op names the mutation that committed, e.g. "move segment".
	Op  string
	Seq Sequence
}

// Subscription delivers change events to one subscriber.
type Subscription struct {
	Changes <-chan Change
	Done    <-chan struct{}

	changes chan Change
	done    chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		changes: make(chan Change, changeBufferSize),
		done:    make(chan struct{}),
	}
	s.Changes = s.changes
	s.Done = s.done
	return s
}

// send delivers an event without blocking; a slow subscriber loses events
// rather than stalling the edit loop (the next event carries the full
// current sequence anyway).
func (s *Subscription) send(c Change) {
	select {
	case s.changes <- c:
	default:
	}
}

// Notifier fans committed-mutation events out to subscribers. It lives on
// the same thread as the store mutations; only the channel reads happen
// elsewhere.
type Notifier struct {
	subs []*Subscription
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers a new subscriber.
func (n *Notifier) Subscribe() *Subscription {
	s := newSubscription()
	n.subs = append(n.subs, s)
	return s
}

// Publish sends the change to every subscriber.
func (n *Notifier) Publish(c Change) {
	for _, s := range n.subs {
		s.send(c)
	}
}

// Close signals all subscribers to stop.
func (n *Notifier) Close() {
	for _, s := range n.subs {
		close(s.done)
	}
	n.subs = nil
}
