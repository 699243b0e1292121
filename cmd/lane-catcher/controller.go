package main

import (
	"log"

	"github.com/lixenwraith/lane-catcher/audio"
	"github.com/lixenwraith/lane-catcher/engine"
	"github.com/lixenwraith/lane-catcher/input"
	"github.com/lixenwraith/lane-catcher/render"
)

// controller turns key actions into engine calls on the loop goroutine
type controller struct {
	loop   *engine.Loop
	eng    *engine.Engine
	view   *render.Renderer
	player *audio.Player
}

// handle applies a; it returns true when the binary should exit
func (c *controller) handle(a input.Action) bool {
	if lane, ok := a.Lane(); ok {
		c.loop.Post(func() {
			c.eng.MoveBasket(lane)
		})
		return false
	}

	switch a {
	case input.ActionStart:
		c.loop.Post(func() {
			// Start doubles as resume
			if c.loop.Paused() {
				c.loop.Resume()
				c.view.SetPaused(false)
				return
			}
			if c.eng.Active() {
				return
			}
			if err := c.eng.Start(); err != nil {
				log.Printf("[GAME] start: %v", err)
			}
		})

	case input.ActionPause:
		c.loop.Post(func() {
			if !c.eng.Active() {
				return
			}
			paused := c.loop.TogglePause()
			c.view.SetPaused(paused)
			log.Printf("[GAME] paused=%v", paused)
		})

	case input.ActionMute:
		muted := c.player.ToggleMute()
		c.loop.Post(func() {
			c.view.SetMuted(muted)
		})

	case input.ActionQuit:
		_ = c.loop.Do(func() {
			c.eng.Stop(engine.ReasonManual)
		})
		return true
	}
	return false
}
