package constants

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// CountdownInterval is the session clock resolution
	CountdownInterval = time.Second

	// LoopQueueSize is the capacity of the posted-work channel of the scheduler loop
	LoopQueueSize = 256
)
