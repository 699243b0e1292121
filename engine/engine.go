// Package engine is the authoritative simulation of the lane-catcher game
//
// The Engine spawns falling items, advances them every display frame, resolves catches
// against the basket, runs the countdown with its level-ups, and keeps the temporary
// effects. It is not safe for concurrent use: every call and every scheduled callback
// must run on the goroutine that drives its Scheduler (see Loop).
package engine

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/lane-catcher/constants"
	"github.com/lixenwraith/lane-catcher/status"
)

// Engine owns all mutable session state
type Engine struct {
	cfg    Config
	sched  Scheduler
	rng    Random
	logger *log.Logger
	h      handlers

	// Session
	active    bool
	epoch     uint64 // bumped on Start and Stop; scheduled callbacks from older epochs exit
	sessionID string
	timeLimit int
	score     int
	level     int
	remaining int
	lane      Lane
	baseSpeed float64
	effects   EffectState

	// Items in spawn order
	items  []*Item
	nextID uint64

	// Pending schedules
	countdown Handle
	spawner   Handle
	frame     Handle
	magnet    Handle
	timeSlow  Handle

	// Cached metric pointers
	stats         *status.Registry
	statSpawned   *atomic.Int64
	statCaught    *atomic.Int64
	statMissed    *atomic.Int64
	statBlocked   *atomic.Int64
	statActivated *atomic.Int64
	statStarted   *atomic.Int64
	statEnded     *atomic.Int64
	statBaseSpeed *status.Float
}

// Option customizes an Engine at construction
type Option func(*Engine)

// WithRandom replaces the spawner's entropy source
func WithRandom(r Random) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithLogger replaces the session logger, default is the standard logger
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStats shares a metrics registry with other components
func WithStats(r *status.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.stats = r
		}
	}
}

// New creates an idle engine; cfg is validated here so Start only checks the time limit
func New(cfg Config, sched Scheduler, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, fmt.Errorf("%w: nil scheduler", ErrInvalidConfig)
	}

	e := &Engine{
		cfg:    cfg,
		sched:  sched,
		logger: log.Default(),
		level:  1,
		lane:   LaneCenter,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRandom(0)
	}
	if e.stats == nil {
		e.stats = status.NewRegistry()
	}

	e.statSpawned = e.stats.Counter("items.spawned")
	e.statCaught = e.stats.Counter("items.caught")
	e.statMissed = e.stats.Counter("items.missed")
	e.statBlocked = e.stats.Counter("shield.blocked")
	e.statActivated = e.stats.Counter("effects.activated")
	e.statStarted = e.stats.Counter("sessions.started")
	e.statEnded = e.stats.Counter("sessions.ended")
	e.statBaseSpeed = e.stats.Gauge("engine.base_speed")

	return e, nil
}

// StartOption adjusts a single session
type StartOption func(*startParams)

type startParams struct {
	timeLimit int
}

// WithTimeLimit overrides the configured session length in seconds
func WithTimeLimit(seconds int) StartOption {
	return func(p *startParams) {
		p.timeLimit = seconds
	}
}

// Start begins a fresh session and launches the countdown, spawn and physics loops
// It is a no-op while a session is active and rejects a non-positive time limit
func (e *Engine) Start(opts ...StartOption) error {
	if e.active {
		return nil
	}

	p := startParams{timeLimit: e.cfg.TimeLimit}
	for _, opt := range opts {
		opt(&p)
	}
	if p.timeLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimeLimit, p.timeLimit)
	}

	e.cancelEffectTimers()

	e.epoch++
	e.active = true
	e.sessionID = uuid.NewString()
	e.timeLimit = p.timeLimit
	e.score = 0
	e.level = 1
	e.remaining = p.timeLimit
	e.lane = LaneCenter
	e.baseSpeed = e.cfg.BaseSpeed
	e.effects = EffectState{}
	e.items = nil

	e.statStarted.Add(1)
	e.statBaseSpeed.Store(e.baseSpeed)
	e.logger.Printf("session %s started: limit=%ds speed=%.2f", e.sessionID, e.timeLimit, e.baseSpeed)

	epoch := e.epoch
	e.emitEffects()
	e.emitScore()
	e.emitTime()
	e.emitBasket()
	if !e.live(epoch) {
		return nil
	}

	e.countdown = e.sched.AfterFunc(constants.CountdownInterval, func() { e.countdownTick(epoch) })
	e.frame = e.sched.OnFrame(func() { e.physicsTick(epoch) })
	e.spawnTick(epoch)
	return nil
}

// Stop ends the active session and fires the game-ended notification exactly once
// Effect flags keep their last values; their expiry timers are cancelled
func (e *Engine) Stop(reason string) {
	if !e.active {
		return
	}
	if reason == "" {
		reason = ReasonManual
	}

	e.active = false
	e.epoch++

	cancel(e.countdown)
	cancel(e.spawner)
	cancel(e.frame)
	e.countdown, e.spawner, e.frame = nil, nil, nil
	e.cancelEffectTimers()

	e.statEnded.Add(1)
	e.logger.Printf("session %s ended: reason=%s score=%d level=%d", e.sessionID, reason, e.score, e.level)

	e.emitEnded(GameResult{
		SessionID: e.sessionID,
		Score:     e.score,
		Level:     e.level,
		Reason:    reason,
	})
}

// OnPoseDetected applies an upstream lane signal; invalid signals and signals outside a
// session are ignored
func (e *Engine) OnPoseDetected(signal string) {
	if !e.active {
		return
	}
	lane, ok := ParseLane(signal)
	if !ok {
		return
	}
	e.MoveBasket(lane)
}

// MoveBasket is the typed form of OnPoseDetected
func (e *Engine) MoveBasket(lane Lane) {
	if !e.active || !lane.Valid() {
		return
	}
	e.lane = lane
	e.emitBasket()
}

// Active reports whether a session is running
func (e *Engine) Active() bool {
	return e.active
}

// State returns a snapshot of the session
func (e *Engine) State() GameState {
	return GameState{
		Active:    e.active,
		SessionID: e.sessionID,
		Score:     e.score,
		Level:     e.level,
		Remaining: e.remaining,
		Lane:      e.lane,
		Effects:   e.effects,
		Items:     len(e.items),
	}
}

// Items returns copies of the active items in spawn order
func (e *Engine) Items() []Item {
	out := make([]Item, len(e.items))
	for i, it := range e.items {
		out[i] = *it
	}
	return out
}

// BaseSpeed is the session-wide fall speed before per-item and per-effect modifiers
func (e *Engine) BaseSpeed() float64 {
	return e.baseSpeed
}

// Stats exposes the metrics registry the engine writes to
func (e *Engine) Stats() *status.Registry {
	return e.stats
}

// live reports whether a callback scheduled in epoch may still run
func (e *Engine) live(epoch uint64) bool {
	return e.active && e.epoch == epoch
}
