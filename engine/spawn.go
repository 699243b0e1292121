package engine

// spawnTick spawns one item and re-arms itself with the level's interval
func (e *Engine) spawnTick(epoch uint64) {
	if !e.live(epoch) {
		return
	}

	e.spawn()

	if !e.live(epoch) {
		return
	}
	e.spawner = e.sched.AfterFunc(e.cfg.SpawnInterval(e.level), func() { e.spawnTick(epoch) })
}

// spawn draws the lane first, then the kind, and freezes the current base speed onto the item
func (e *Engine) spawn() {
	lane := Lanes[e.rng.IntN(len(Lanes))]
	kind := e.cfg.Spawn.Pick(e.rng.Float64(), e.level)

	speed := e.baseSpeed
	if kind == KindBanana {
		speed += e.cfg.BananaBonus
	}

	e.nextID++
	it := &Item{
		ID:        e.nextID,
		Kind:      kind,
		Points:    kind.Points(),
		Lane:      lane,
		BaseSpeed: speed,
		Speed:     speed,
	}
	e.items = append(e.items, it)
	e.statSpawned.Add(1)

	e.emitSpawned(*it)
}
