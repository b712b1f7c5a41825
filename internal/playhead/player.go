// Package playhead implements the playback collaborator: a clock-driven
// transport over the projected sequence. It decodes nothing and never
// mutates the timeline store. It only reads the sequence it was handed and
// reports position/state back through events.
package playhead

import (
	"sync"
	"time"

	"github.com/lrousseau/montage/internal/composition"
)

const tickInterval = 100 * time.Millisecond

// Player advances a playhead through a projected sequence in real time.
//
// Unlike the timeline store, the player is goroutine-safe: its ticker
// publishes positions from a background goroutine while the UI thread
// controls the transport.
type Player struct {
	mu         sync.Mutex
	seq        composition.Sequence
	state      State
	anchorPos  float64   // position when the anchor was taken
	anchorTime time.Time // wall time of the anchor, valid while playing
	subs       []*Subscription
	now        func() time.Time
	done       chan struct{}
	closeOnce  sync.Once
}

// New creates a stopped player and starts its tick loop.
func New() *Player {
	p := newWithClock(time.Now)
	go p.run()
	return p
}

// newWithClock creates a player without starting the tick loop. Tests drive
// it through the injected clock.
func newWithClock(now func() time.Time) *Player {
	return &Player{
		now:  now,
		done: make(chan struct{}),
	}
}

// SetSequence replaces the sequence being played. The playhead keeps its
// position, clamped into the new duration; this is how committed mutations
// reach the transport.
func (p *Player) SetSequence(seq composition.Sequence) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos := p.positionLocked()
	p.seq = seq
	if pos > seq.Duration {
		pos = seq.Duration
	}
	p.anchorPos = pos
	p.anchorTime = p.now()
}

// Play starts or resumes playback.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StatePlaying {
		return
	}
	p.anchorPos = p.positionLocked()
	p.anchorTime = p.now()
	p.setStateLocked(StatePlaying)
}

// Pause freezes the playhead at its current position.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying {
		return
	}
	p.anchorPos = p.positionLocked()
	p.setStateLocked(StatePaused)
}

// Stop halts playback and rewinds to zero.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.anchorPos = 0
	p.anchorTime = p.now()
	p.setStateLocked(StateStopped)
	p.publishPositionLocked(0)
}

// Toggle switches between playing and paused (or starts from stopped).
func (p *Player) Toggle() {
	p.mu.Lock()
	playing := p.state == StatePlaying
	p.mu.Unlock()
	if playing {
		p.Pause()
	} else {
		p.Play()
	}
}

// SeekTo moves the playhead to an absolute position, clamped into the
// sequence.
func (p *Player) SeekTo(pos float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos = p.clampLocked(pos)
	p.anchorPos = pos
	p.anchorTime = p.now()
	p.publishPositionLocked(pos)
}

// SeekBy moves the playhead by a relative amount.
func (p *Player) SeekBy(delta float64) {
	p.mu.Lock()
	pos := p.positionLocked() + delta
	p.mu.Unlock()
	p.SeekTo(pos)
}

// Position returns the current playhead position in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

// State returns the transport state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers a new event subscriber.
func (p *Player) Subscribe() *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := newSubscription()
	p.subs = append(p.subs, s)
	return s
}

// Close stops the tick loop and signals subscribers.
func (p *Player) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, s := range p.subs {
			close(s.doneCh)
		}
		p.subs = nil
	})
}

func (p *Player) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick publishes the current position and stops at the end of the sequence.
func (p *Player) tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying {
		return
	}
	pos := p.positionLocked()
	if pos >= p.seq.Duration && p.seq.Duration > 0 {
		p.anchorPos = p.seq.Duration
		p.setStateLocked(StateStopped)
		p.publishPositionLocked(p.seq.Duration)
		return
	}
	p.publishPositionLocked(pos)
}

func (p *Player) positionLocked() float64 {
	if p.state != StatePlaying {
		return p.anchorPos
	}
	pos := p.anchorPos + p.now().Sub(p.anchorTime).Seconds()
	return p.clampLocked(pos)
}

func (p *Player) clampLocked(pos float64) float64 {
	if pos < 0 {
		return 0
	}
	if p.seq.Duration > 0 && pos > p.seq.Duration {
		return p.seq.Duration
	}
	return pos
}

func (p *Player) setStateLocked(next State) {
	if p.state == next {
		return
	}
	prev := p.state
	p.state = next
	for _, s := range p.subs {
		s.sendState(StateChange{Previous: prev, Current: next})
	}
}

func (p *Player) publishPositionLocked(pos float64) {
	for _, s := range p.subs {
		s.sendPosition(pos)
	}
}
