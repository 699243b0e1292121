package network

import (
	"github.com/lixenwraith/lane-catcher/engine"
)

// Game is the control surface remote clients drive
// Implementations are called from connection goroutines and must be goroutine-safe
type Game interface {
	Pose(signal string)
	Start(timeLimit int) error
	Stop() error
	State() (engine.GameState, error)
}

// PoseSink receives raw pose signals, typically an input.Stabilizer
type PoseSink interface {
	Submit(signal string)
}

// LoopGame marshals every call onto the loop goroutine that owns the engine
type LoopGame struct {
	loop  *engine.Loop
	eng   *engine.Engine
	poses PoseSink
}

// NewLoopGame binds eng to loop; a nil poses sends signals straight to OnPoseDetected
func NewLoopGame(loop *engine.Loop, eng *engine.Engine, poses PoseSink) *LoopGame {
	return &LoopGame{loop: loop, eng: eng, poses: poses}
}

func (g *LoopGame) Pose(signal string) {
	if g.poses != nil {
		g.poses.Submit(signal)
		return
	}
	g.loop.Post(func() {
		g.eng.OnPoseDetected(signal)
	})
}

// Start begins a session; a zero time limit uses the configured one
func (g *LoopGame) Start(timeLimit int) error {
	var opts []engine.StartOption
	if timeLimit != 0 {
		opts = append(opts, engine.WithTimeLimit(timeLimit))
	}
	var err error
	if doErr := g.loop.Do(func() {
		err = g.eng.Start(opts...)
	}); doErr != nil {
		return doErr
	}
	return err
}

func (g *LoopGame) Stop() error {
	return g.loop.Do(func() {
		g.eng.Stop(engine.ReasonManual)
	})
}

func (g *LoopGame) State() (engine.GameState, error) {
	var st engine.GameState
	err := g.loop.Do(func() {
		st = g.eng.State()
	})
	return st, err
}
