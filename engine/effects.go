package engine

import "time"

// activateTimed raises a timed effect and (re)arms its single expiry timer
// Re-activation replaces the pending expiry, so the flag never drops in between
func (e *Engine) activateTimed(flag *bool, timer *Handle, d time.Duration) {
	cancel(*timer)
	*flag = true
	e.statActivated.Add(1)

	epoch := e.epoch
	var h Handle
	h = e.sched.AfterFunc(d, func() {
		if !e.live(epoch) || *timer != h {
			return
		}
		*flag = false
		*timer = nil
		e.emitEffects()
	})
	*timer = h

	e.emitEffects()
}

func (e *Engine) cancelEffectTimers() {
	cancel(e.magnet)
	cancel(e.timeSlow)
	e.magnet, e.timeSlow = nil, nil
}
