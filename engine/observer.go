package engine

// Observer receives every outbound notification of the engine
// Calls are synchronous on the engine goroutine and must not block
type Observer interface {
	ScoreChanged(score, level int)
	TimeUpdated(remaining int)
	BasketMoved(lane Lane)
	ItemSpawned(item Item)
	ItemRemoved(id uint64)
	Render(items []Item)
	EffectsChanged(effects EffectState)
	GameEnded(result GameResult)
}

// NopObserver ignores everything; embed it to implement a subset of Observer
type NopObserver struct{}

func (NopObserver) ScoreChanged(int, int) {}
func (NopObserver) TimeUpdated(int) {}
func (NopObserver) BasketMoved(Lane) {}
func (NopObserver) ItemSpawned(Item) {}
func (NopObserver) ItemRemoved(uint64) {}
func (NopObserver) Render([]Item) {}
func (NopObserver) EffectsChanged(EffectState) {}
func (NopObserver) GameEnded(GameResult) {}

// Fanout returns an Observer that forwards to each non-nil observer in order
func Fanout(observers ...Observer) Observer {
	out := make(fanout, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type fanout []Observer

func (f fanout) ScoreChanged(score, level int) {
	for _, o := range f {
		o.ScoreChanged(score, level)
	}
}

func (f fanout) TimeUpdated(remaining int) {
	for _, o := range f {
		o.TimeUpdated(remaining)
	}
}

func (f fanout) BasketMoved(lane Lane) {
	for _, o := range f {
		o.BasketMoved(lane)
	}
}

func (f fanout) ItemSpawned(item Item) {
	for _, o := range f {
		o.ItemSpawned(item)
	}
}

func (f fanout) ItemRemoved(id uint64) {
	for _, o := range f {
		o.ItemRemoved(id)
	}
}

// Render hands every observer its own copy so one cannot alter what the next sees
func (f fanout) Render(items []Item) {
	for i, o := range f {
		if i == len(f)-1 {
			o.Render(items)
			continue
		}
		o.Render(append([]Item(nil), items...))
	}
}

func (f fanout) EffectsChanged(effects EffectState) {
	for _, o := range f {
		o.EffectsChanged(effects)
	}
}

func (f fanout) GameEnded(result GameResult) {
	for _, o := range f {
		o.GameEnded(result)
	}
}

// handlers are the single-slot callbacks; a nil slot drops the notification
type handlers struct {
	scoreChanged   func(score, level int)
	timeUpdated    func(remaining int)
	basketMoved    func(lane Lane)
	itemSpawned    func(item Item)
	itemRemoved    func(id uint64)
	render         func(items []Item)
	effectsChanged func(effects EffectState)
	gameEnded      func(result GameResult)
}

// OnScoreChanged replaces the score/level callback
func (e *Engine) OnScoreChanged(fn func(score, level int)) { e.h.scoreChanged = fn }

// OnTimeUpdated replaces the remaining-time callback
func (e *Engine) OnTimeUpdated(fn func(remaining int)) { e.h.timeUpdated = fn }

// OnBasketMoved replaces the basket lane callback
func (e *Engine) OnBasketMoved(fn func(lane Lane)) { e.h.basketMoved = fn }

// OnItemSpawned replaces the spawn callback
func (e *Engine) OnItemSpawned(fn func(item Item)) { e.h.itemSpawned = fn }

// OnItemRemoved replaces the removal callback, fired once per item whether caught or missed
func (e *Engine) OnItemRemoved(fn func(id uint64)) { e.h.itemRemoved = fn }

// OnRender replaces the per-frame callback carrying every active item
func (e *Engine) OnRender(fn func(items []Item)) { e.h.render = fn }

// OnEffectsChanged replaces the effect-state callback
func (e *Engine) OnEffectsChanged(fn func(effects EffectState)) { e.h.effectsChanged = fn }

// OnGameEnded replaces the session-end callback
func (e *Engine) OnGameEnded(fn func(result GameResult)) { e.h.gameEnded = fn }

// Bind points every callback slot at o, replacing what was there; nil clears all slots
func (e *Engine) Bind(o Observer) {
	if o == nil {
		e.h = handlers{}
		return
	}
	e.h = handlers{
		scoreChanged:   o.ScoreChanged,
		timeUpdated:    o.TimeUpdated,
		basketMoved:    o.BasketMoved,
		itemSpawned:    o.ItemSpawned,
		itemRemoved:    o.ItemRemoved,
		render:         o.Render,
		effectsChanged: o.EffectsChanged,
		gameEnded:      o.GameEnded,
	}
}

func (e *Engine) emitScore() {
	if fn := e.h.scoreChanged; fn != nil {
		fn(e.score, e.level)
	}
}

func (e *Engine) emitTime() {
	if fn := e.h.timeUpdated; fn != nil {
		fn(e.remaining)
	}
}

func (e *Engine) emitBasket() {
	if fn := e.h.basketMoved; fn != nil {
		fn(e.lane)
	}
}

func (e *Engine) emitSpawned(item Item) {
	if fn := e.h.itemSpawned; fn != nil {
		fn(item)
	}
}

func (e *Engine) emitRemoved(id uint64) {
	if fn := e.h.itemRemoved; fn != nil {
		fn(id)
	}
}

func (e *Engine) emitRender() {
	if fn := e.h.render; fn != nil {
		fn(e.Items())
	}
}

func (e *Engine) emitEffects() {
	if fn := e.h.effectsChanged; fn != nil {
		fn(e.effects)
	}
}

func (e *Engine) emitEnded(result GameResult) {
	if fn := e.h.gameEnded; fn != nil {
		fn(result)
	}
}
