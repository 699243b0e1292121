package audio

import "github.com/lixenwraith/lane-catcher/engine"

// Cues turns engine notifications into sounds
// It relies on the engine's notification order: a new session emits effects, then score,
// then time, so the first time update marks the session as running
type Cues struct {
	engine.NopObserver

	sink    Sink
	running bool
	score   int
	level   int
	effects engine.EffectState
}

// NewCues creates a cue mapper writing to sink
func NewCues(sink Sink) *Cues {
	return &Cues{sink: sink, level: 1}
}

func (c *Cues) ScoreChanged(score, level int) {
	if !c.running {
		c.score, c.level = score, level
		return
	}

	switch gained := score - c.score; {
	case gained >= engine.KindBanana.Points():
		c.sink.Play(SoundBonus)
	case gained > 0:
		c.sink.Play(SoundCatch)
	}
	if level > c.level {
		c.sink.Play(SoundLevelUp)
	}
	c.score, c.level = score, level
}

func (c *Cues) TimeUpdated(int) {
	c.running = true
}

func (c *Cues) EffectsChanged(effects engine.EffectState) {
	prev := c.effects
	c.effects = effects
	if !c.running {
		return
	}

	// an unchanged set means a power-up was caught again while already active
	raised := (effects.Shield && !prev.Shield) || (effects.Magnet && !prev.Magnet) || (effects.TimeSlow && !prev.TimeSlow)
	if raised || effects == prev {
		c.sink.Play(SoundPowerUp)
		return
	}
	// Magnet and TimeSlow expire silently
	if prev.Shield && !effects.Shield {
		c.sink.Play(SoundShieldBreak)
	}
}

func (c *Cues) GameEnded(result engine.GameResult) {
	c.running = false
	if result.Reason == engine.ReasonBomb {
		c.sink.Play(SoundExplosion)
		return
	}
	c.sink.Play(SoundGameOver)
}
