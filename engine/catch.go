package engine

// resolveCatch applies the effect of a caught item; no kind ever lowers the score
func (e *Engine) resolveCatch(it *Item) {
	switch it.Kind {
	case KindApple, KindBanana:
		e.score += it.Points
		e.emitScore()

	case KindBomb:
		if e.effects.Shield {
			e.effects.Shield = false
			e.statBlocked.Add(1)
			e.emitEffects()
			return
		}
		e.Stop(ReasonBomb)

	case KindShield:
		e.effects.Shield = true
		e.statActivated.Add(1)
		e.emitEffects()

	case KindMagnet:
		e.activateTimed(&e.effects.Magnet, &e.magnet, e.cfg.MagnetDuration)

	case KindTimeSlow:
		e.activateTimed(&e.effects.TimeSlow, &e.timeSlow, e.cfg.TimeSlowDuration)
	}
}
