package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lane-catcher/audio"
	"github.com/lixenwraith/lane-catcher/engine"
	"github.com/lixenwraith/lane-catcher/input"
	"github.com/lixenwraith/lane-catcher/render"
)

func newTestController(t *testing.T) *controller {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(60, 30)
	t.Cleanup(screen.Fini)

	view := render.NewRenderer(screen)
	loop := engine.NewLoop(engine.WithAfterFrame(view.Draw))
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	eng, err := engine.New(engine.DefaultConfig(), loop, engine.WithRandom(engine.NewRandom(1)))
	if err != nil {
		t.Fatal(err)
	}
	eng.Bind(view)

	cfg := audio.DefaultAudioConfig()
	cfg.Enabled = false
	return &controller{loop: loop, eng: eng, view: view, player: audio.NewPlayer(cfg)}
}

func (c *controller) state(t *testing.T) engine.GameState {
	t.Helper()
	var st engine.GameState
	if err := c.loop.Do(func() { st = c.eng.State() }); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestControllerSession(t *testing.T) {
	c := newTestController(t)

	c.handle(input.ActionLaneLeft)
	if st := c.state(t); st.Lane != engine.LaneCenter {
		t.Errorf("Lane moved before start: %v", st.Lane)
	}

	c.handle(input.ActionStart)
	if st := c.state(t); !st.Active {
		t.Fatal("Expected active session after start")
	}

	c.handle(input.ActionLaneLeft)
	if st := c.state(t); st.Lane != engine.LaneLeft {
		t.Errorf("Lane = %v, want Left", st.Lane)
	}

	c.handle(input.ActionPause)
	c.state(t)
	if !c.loop.Paused() {
		t.Fatal("Expected paused loop")
	}
	before := c.loop.Frames()
	time.Sleep(50 * time.Millisecond)
	if c.loop.Frames() != before {
		t.Error("Frames advanced while paused")
	}

	// Start resumes a paused session instead of restarting it
	c.handle(input.ActionStart)
	st := c.state(t)
	if c.loop.Paused() || !st.Active || st.Lane != engine.LaneLeft {
		t.Errorf("Expected resumed session, paused=%v state=%+v", c.loop.Paused(), st)
	}

	if quit := c.handle(input.ActionQuit); !quit {
		t.Error("Quit should end the program")
	}
	if st := c.state(t); st.Active {
		t.Error("Session still active after quit")
	}
}

func TestControllerPauseIdle(t *testing.T) {
	c := newTestController(t)

	c.handle(input.ActionPause)
	c.state(t)
	if c.loop.Paused() {
		t.Error("Pause without a session should be ignored")
	}
}

func TestControllerMute(t *testing.T) {
	c := newTestController(t)

	if quit := c.handle(input.ActionMute); quit {
		t.Error("Mute should not quit")
	}
	if !c.player.Muted() {
		t.Error("Expected muted player")
	}
	c.handle(input.ActionMute)
	if c.player.Muted() {
		t.Error("Expected unmuted player")
	}
	if quit := c.handle(input.ActionNone); quit {
		t.Error("Unbound key should not quit")
	}
}
