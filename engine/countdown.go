package engine

import "github.com/lixenwraith/lane-catcher/constants"

// countdownTick runs once per second of game time
// Level-ups compare the remaining seconds literally against Config.LevelUpAt
func (e *Engine) countdownTick(epoch uint64) {
	if !e.live(epoch) {
		return
	}

	e.remaining--
	e.emitTime()

	if e.cfg.levelsUpAt(e.remaining) {
		e.level++
		e.baseSpeed += e.cfg.SpeedStep
		e.statBaseSpeed.Store(e.baseSpeed)
		e.logger.Printf("session %s level %d at %ds remaining, speed=%.2f", e.sessionID, e.level, e.remaining, e.baseSpeed)
		e.emitScore()
	}

	if e.remaining <= 0 {
		e.Stop(ReasonTimeout)
		return
	}
	if !e.live(epoch) {
		return
	}
	e.countdown = e.sched.AfterFunc(constants.CountdownInterval, func() { e.countdownTick(epoch) })
}
