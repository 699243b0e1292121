package engine

import (
	"sync"
	"time"
)

// PausableClock is game time: wall time minus every paused interval
type PausableClock struct {
	mu     sync.RWMutex
	source TimeSource

	start       time.Time
	paused      bool
	pausedAt    time.Time
	totalPaused time.Duration
}

// NewPausableClock starts a running clock on source, nil means the system clock
func NewPausableClock(source TimeSource) *PausableClock {
	if source == nil {
		source = SystemTime{}
	}
	return &PausableClock{
		source: source,
		start:  source.Now(),
	}
}

// Now returns the current game time; it stands still while paused
func (c *PausableClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	wall := c.source.Now()
	if c.paused {
		wall = c.pausedAt
	}
	return c.start.Add(wall.Sub(c.start) - c.totalPaused)
}

// Pause freezes game time, returns false if already paused
func (c *PausableClock) Pause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		return false
	}
	c.paused = true
	c.pausedAt = c.source.Now()
	return true
}

// Resume restarts game time, returns false if not paused
func (c *PausableClock) Resume() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		return false
	}
	c.totalPaused += c.source.Now().Sub(c.pausedAt)
	c.paused = false
	c.pausedAt = time.Time{}
	return true
}

// IsPaused reports the pause state
func (c *PausableClock) IsPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// PausedFor is the cumulative paused duration including a pause in progress
func (c *PausableClock) PausedFor() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.totalPaused
	if c.paused {
		total += c.source.Now().Sub(c.pausedAt)
	}
	return total
}
