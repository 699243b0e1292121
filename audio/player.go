package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/lane-catcher/constants"
)

// Player mixes cues onto the speaker
// Play never blocks on audio output and is safe from any goroutine
type Player struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool

	lastPlayed [soundTypeCount]time.Time
	now        func() time.Time

	// add hands a streamer to the output; replaced in tests
	add func(beep.Streamer)
}

// NewPlayer creates an uninitialized player; nil cfg uses defaults
func NewPlayer(cfg *AudioConfig) *Player {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	p := &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
	p.muted.Store(cfg.Muted)
	p.add = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	return p
}

// Initialize opens the speaker and starts the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if !p.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences and closes the speaker
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Play queues a cue unless muted, uninitialized, or the same cue played within MinSoundGap
func (p *Player) Play(st SoundType) {
	if st < 0 || st >= soundTypeCount || p.muted.Load() {
		return
	}

	p.mu.Lock()
	if !p.initialized {
		p.mu.Unlock()
		return
	}
	now := p.now()
	if now.Sub(p.lastPlayed[st]) < constants.MinSoundGap {
		p.mu.Unlock()
		return
	}
	p.lastPlayed[st] = now
	p.mu.Unlock()

	if s := GetSoundEffect(st, p.cfg); s != nil {
		p.add(s)
	}
}

// ToggleMute flips the mute state and returns true if now muted
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetMuted sets the mute state
func (p *Player) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// Muted reports the mute state
func (p *Player) Muted() bool {
	return p.muted.Load()
}
