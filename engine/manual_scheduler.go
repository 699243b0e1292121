package engine

import "time"

// ManualScheduler is a deterministic Scheduler for tests
// Virtual time moves only on Advance and frames run only on Frame
type ManualScheduler struct {
	now    time.Duration
	seq    uint64
	timers []*manualTask
	frames []*manualTask
}

type manualTask struct {
	at   time.Duration
	seq  uint64
	fn   func()
	done bool
}

func (t *manualTask) Cancel() {
	t.done = true
}

// NewManualScheduler creates a scheduler at virtual time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Now returns the virtual time elapsed since creation
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) Handle {
	m.seq++
	t := &manualTask{at: m.now + max(d, 0), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

func (m *ManualScheduler) OnFrame(fn func()) Handle {
	m.seq++
	t := &manualTask{seq: m.seq, fn: fn}
	m.frames = append(m.frames, t)
	return t
}

// Advance moves virtual time forward by d and fires due timers in deadline order
// Timers armed by a fired callback also fire if their deadline falls inside the window
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.at
		t.done = true
		t.fn()
	}
	m.now = target
}

// Frame runs the frame callbacks requested before the call; requests made while it runs
// wait for the next Frame
func (m *ManualScheduler) Frame() {
	pending := m.frames
	m.frames = nil
	for _, t := range pending {
		if t.done {
			continue
		}
		t.done = true
		t.fn()
	}
}

// Frames runs n consecutive frames
func (m *ManualScheduler) Frames(n int) {
	for i := 0; i < n; i++ {
		m.Frame()
	}
}

// PendingTimers counts armed, uncancelled timers
func (m *ManualScheduler) PendingTimers() int {
	m.compact()
	return len(m.timers)
}

// PendingFrames counts uncancelled frame requests
func (m *ManualScheduler) PendingFrames() int {
	n := 0
	for _, t := range m.frames {
		if !t.done {
			n++
		}
	}
	return n
}

func (m *ManualScheduler) nextDue(limit time.Duration) *manualTask {
	m.compact()
	var next *manualTask
	for _, t := range m.timers {
		if t.at > limit {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *ManualScheduler) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	clear(m.timers[len(live):])
	m.timers = live
}
