package input

import (
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/lixenwraith/lane-catcher/engine"
)

// Stabilizer filters a jittery pose stream
// A lane is forwarded only after it has been steady for the settle window and differs
// from the basket's current lane. It observes BasketMoved to learn the current lane, so
// keyboard moves and session resets are taken into account.
type Stabilizer struct {
	engine.NopObserver

	mu       sync.Mutex
	pending  engine.Lane
	current  engine.Lane
	closed   bool
	aliases  map[string]engine.Lane
	debounce func(func())
	forward  func(engine.Lane)
}

// NewStabilizer forwards settled lanes to forward, from a timer goroutine
// A zero settle window forwards every accepted signal immediately
func NewStabilizer(settle time.Duration, forward func(engine.Lane)) *Stabilizer {
	s := &Stabilizer{
		current: engine.LaneCenter,
		forward: forward,
	}
	if settle > 0 {
		s.debounce = debounce.New(settle)
	}
	return s
}

// SetAliases maps classifier labels to lanes, in addition to the lane names themselves
func (s *Stabilizer) SetAliases(aliases map[string]engine.Lane) {
	s.mu.Lock()
	s.aliases = aliases
	s.mu.Unlock()
}

// Submit accepts a raw lane signal; unknown signals are dropped
func (s *Stabilizer) Submit(signal string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	lane, ok := s.aliases[signal]
	if !ok {
		lane, ok = engine.ParseLane(signal)
	}
	if !ok {
		s.mu.Unlock()
		return
	}
	s.pending = lane
	s.mu.Unlock()

	if s.debounce == nil {
		s.flush()
		return
	}
	s.debounce(s.flush)
}

func (s *Stabilizer) flush() {
	s.mu.Lock()
	if s.closed || s.pending == s.current {
		s.mu.Unlock()
		return
	}
	lane := s.pending
	s.current = lane
	s.mu.Unlock()

	s.forward(lane)
}

// BasketMoved tracks the basket lane the engine reports
func (s *Stabilizer) BasketMoved(lane engine.Lane) {
	s.mu.Lock()
	s.current = lane
	s.mu.Unlock()
}

// Close drops any pending signal and ignores later ones
func (s *Stabilizer) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
