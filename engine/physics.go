package engine

import "github.com/lixenwraith/lane-catcher/constants"

// physicsTick advances the simulation by one display frame and requests the next frame
func (e *Engine) physicsTick(epoch uint64) {
	if !e.live(epoch) {
		return
	}

	e.step()

	if !e.live(epoch) {
		return
	}
	e.frame = e.sched.OnFrame(func() { e.physicsTick(epoch) })
}

// step moves every item, then resolves each one in spawn order as missed, caught or in flight
// A catch that ends the session stops resolution at once and no render is emitted
func (e *Engine) step() {
	for _, it := range e.items {
		it.Speed = it.BaseSpeed
		if e.effects.TimeSlow {
			it.Speed *= e.cfg.SlowFactor
		}
		it.Y += it.Speed

		if e.effects.Magnet && it.Kind.Collectible() && it.Y > constants.MagnetPullLine {
			it.Lane = e.lane
		}
	}

	epoch := e.epoch
	items := e.items
	kept := make([]*Item, 0, len(items))
	for i, it := range items {
		switch {
		case it.Y > constants.TrackLength:
			e.statMissed.Add(1)
			e.emitRemoved(it.ID)

		case e.catchable(it):
			e.statCaught.Add(1)
			e.resolveCatch(it)
			e.emitRemoved(it.ID)

		default:
			kept = append(kept, it)
		}

		if !e.live(epoch) {
			// a game-ended callback may already have started the next session
			if !e.active {
				e.items = append(kept, items[i+1:]...)
			}
			return
		}
	}
	e.items = kept

	e.emitRender()
}

// catchable is true inside the catch band when the item shares the basket lane, or when an
// active magnet holds a collectible
func (e *Engine) catchable(it *Item) bool {
	if it.Y < constants.CatchBandTop || it.Y >= constants.CatchBandBottom {
		return false
	}
	if it.Lane == e.lane {
		return true
	}
	return e.effects.Magnet && it.Kind.Collectible()
}
