package engine

import "time"

// Handle cancels one scheduled callback
// Cancel is idempotent and a no-op once the callback has run
type Handle interface {
	Cancel()
}

// Scheduler runs engine callbacks one at a time on a single goroutine
// AfterFunc fires once after d of game time; OnFrame fires once on the next display frame
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
	OnFrame(fn func()) Handle
}

func cancel(h Handle) {
	if h != nil {
		h.Cancel()
	}
}
