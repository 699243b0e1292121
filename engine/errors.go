package engine

import "errors"

// Sentinel errors
var (
	ErrInvalidTimeLimit = errors.New("time limit must be positive")
	ErrInvalidConfig    = errors.New("invalid engine config")
	ErrLoopRunning      = errors.New("scheduler loop already running")
	ErrLoopStopped      = errors.New("scheduler loop stopped")
)
