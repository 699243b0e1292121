package engine

import (
	"sync"
	"time"
)

// TimeSource supplies wall-clock readings to the pausable clock
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the monotonic system clock
type SystemTime struct{}

func (SystemTime) Now() time.Time {
	return time.Now()
}

// MockTimeSource is a controllable TimeSource for tests
type MockTimeSource struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeSource creates a mock frozen at start
func NewMockTimeSource(start time.Time) *MockTimeSource {
	return &MockTimeSource{now: start}
}

func (m *MockTimeSource) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the mock forward by d
func (m *MockTimeSource) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
