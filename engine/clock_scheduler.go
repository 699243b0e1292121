package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lane-catcher/constants"
)

// loopIdleWait bounds the sleep when no timer is armed or the clock is paused
const loopIdleWait = time.Minute

// Loop is the production Scheduler
// A single goroutine (Run) executes posted work, due timers and frame callbacks in turn,
// so nothing it runs ever overlaps. Timers run on game time and freeze while paused.
type Loop struct {
	clock         *PausableClock
	frameInterval time.Duration
	afterFrame    func()

	mu     sync.Mutex
	timers []*loopTask
	frames []*loopTask

	posted  chan func()
	wake    chan struct{}
	done    chan struct{}
	running atomic.Bool

	frameCount atomic.Uint64
}

type loopTask struct {
	at   time.Time
	fn   func()
	done atomic.Bool
}

func (t *loopTask) Cancel() {
	t.done.Store(true)
}

// claim marks the task as run; false means it was cancelled or already ran
func (t *loopTask) claim() bool {
	return t.done.CompareAndSwap(false, true)
}

// LoopOption customizes a Loop
type LoopOption func(*Loop)

// WithFrameInterval sets the display frame cadence
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.frameInterval = d
		}
	}
}

// WithClock replaces the game clock
func WithClock(c *PausableClock) LoopOption {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithAfterFrame registers a hook that runs on the loop goroutine after every frame,
// including frames skipped because of pause, so the view can still be drawn
func WithAfterFrame(fn func()) LoopOption {
	return func(l *Loop) {
		l.afterFrame = fn
	}
}

// NewLoop creates a stopped loop; call Run to drive it
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		frameInterval: constants.FrameUpdateInterval,
		posted:        make(chan func(), constants.LoopQueueSize),
		wake:          make(chan struct{}, 1),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.clock == nil {
		l.clock = NewPausableClock(nil)
	}
	return l
}

// Clock exposes the game clock
func (l *Loop) Clock() *PausableClock {
	return l.clock
}

// AfterFunc arms fn to run once d of game time from now
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	t := &loopTask{at: l.clock.Now().Add(max(d, 0)), fn: fn}
	l.mu.Lock()
	l.timers = append(l.timers, t)
	l.mu.Unlock()
	l.signal()
	return t
}

// OnFrame requests fn on the next unpaused frame
func (l *Loop) OnFrame(fn func()) Handle {
	t := &loopTask{fn: fn}
	l.mu.Lock()
	l.frames = append(l.frames, t)
	l.mu.Unlock()
	return t
}

// Post queues fn for the loop goroutine, blocking while the queue is full
// Returns false once the loop has stopped
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.posted <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop goroutine and waits for it
// Must not be called from the loop goroutine itself
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	}
}

// Pause freezes game time, timers and frame callbacks; returns false if already paused
func (l *Loop) Pause() bool {
	ok := l.clock.Pause()
	l.signal()
	return ok
}

// Resume continues from where Pause left off; returns false if not paused
func (l *Loop) Resume() bool {
	ok := l.clock.Resume()
	l.signal()
	return ok
}

// TogglePause flips the pause state and returns true if now paused
func (l *Loop) TogglePause() bool {
	if l.Pause() {
		return true
	}
	l.Resume()
	return false
}

// Paused reports the pause state
func (l *Loop) Paused() bool {
	return l.clock.IsPaused()
}

// Frames returns the number of unpaused frames run so far
func (l *Loop) Frames() uint64 {
	return l.frameCount.Load()
}

// Done is closed when Run returns
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run drives the loop until ctx is cancelled; a Loop runs at most once
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer close(l.done)

	frames := time.NewTicker(l.frameInterval)
	defer frames.Stop()
	wakeTimer := time.NewTimer(loopIdleWait)
	defer wakeTimer.Stop()

	for {
		wakeTimer.Reset(l.untilNextTimer())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posted:
			fn()
		case <-frames.C:
			l.runFrame()
		case <-wakeTimer.C:
		case <-l.wake:
		}

		l.fireDue()
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) runFrame() {
	if !l.clock.IsPaused() {
		l.mu.Lock()
		pending := l.frames
		l.frames = nil
		l.mu.Unlock()

		for _, t := range pending {
			if t.claim() {
				t.fn()
			}
		}
		l.frameCount.Add(1)
	}

	if l.afterFrame != nil {
		l.afterFrame()
	}
}

// fireDue runs every timer whose deadline has passed, earliest first
func (l *Loop) fireDue() {
	for !l.clock.IsPaused() {
		t := l.popDue(l.clock.Now())
		if t == nil {
			return
		}
		if t.claim() {
			t.fn()
		}
	}
}

func (l *Loop) popDue(now time.Time) *loopTask {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.compactLocked()
	idx := -1
	for i, t := range l.timers {
		if t.at.After(now) {
			continue
		}
		if idx < 0 || t.at.Before(l.timers[idx].at) {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	t := l.timers[idx]
	l.timers = append(l.timers[:idx], l.timers[idx+1:]...)
	return t
}

func (l *Loop) untilNextTimer() time.Duration {
	if l.clock.IsPaused() {
		return loopIdleWait
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.compactLocked()
	if len(l.timers) == 0 {
		return loopIdleWait
	}
	next := l.timers[0].at
	for _, t := range l.timers[1:] {
		if t.at.Before(next) {
			next = t.at
		}
	}
	return max(next.Sub(l.clock.Now()), 0)
}

func (l *Loop) compactLocked() {
	live := l.timers[:0]
	for _, t := range l.timers {
		if !t.done.Load() {
			live = append(live, t)
		}
	}
	clear(l.timers[len(live):])
	l.timers = live
}
