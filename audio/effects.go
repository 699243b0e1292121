package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/lane-catcher/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite wave streamer
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack ramp, a flat sustain and a release ramp
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero gain is expressed as Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a shaped oscillator
func tone(freq float64, wave WaveType, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// arpeggio plays shaped notes back to back
func arpeggio(freqs []float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		notes[i] = tone(f, wave, constants.ArpeggioNoteDuration, constants.ArpeggioNoteAttack, constants.ArpeggioNoteRelease, rate)
	}
	return beep.Seq(notes...)
}

// CreateCatchSound generates a short pop for an apple
func CreateCatchSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	pop := tone(659.25, WaveSine, constants.CatchSoundDuration, constants.CatchSoundAttack, constants.CatchSoundRelease, rate)
	return newVolume(pop, cfg.volume(SoundCatch))
}

// CreateBonusSound generates a two-note chime for a banana
func CreateBonusSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// B5 then E6
	n1 := tone(987.77, WaveSquare, constants.BonusSoundNote1Duration, constants.BonusSoundAttack, constants.BonusSoundNote1Release, rate)
	n2 := tone(1318.51, WaveSquare, constants.BonusSoundNote2Duration, constants.BonusSoundAttack, constants.BonusSoundNote2Release, rate)

	return newVolume(beep.Seq(n1, n2), cfg.volume(SoundBonus))
}

// CreatePowerUpSound generates a bell with an octave overtone
func CreatePowerUpSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := tone(880.0, WaveSine, constants.PowerUpSoundDuration, constants.PowerUpSoundAttack, constants.PowerUpSoundFundamentalRelease, rate)
	over := tone(1760.0, WaveSine, constants.PowerUpSoundDuration, constants.PowerUpSoundAttack, constants.PowerUpSoundOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)
	return newVolume(mixed, cfg.volume(SoundPowerUp))
}

// CreateShieldBreakSound generates a harsh saw buzz
func CreateShieldBreakSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	buzz := tone(220.0, WaveSaw, constants.ShieldBreakSoundDuration, constants.ShieldBreakSoundAttack, constants.ShieldBreakSoundRelease, rate)
	return newVolume(buzz, cfg.volume(SoundShieldBreak))
}

// CreateExplosionSound generates noise over a low rumble
func CreateExplosionSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := tone(0, WaveNoise, constants.ExplosionSoundDuration, constants.ExplosionSoundAttack, constants.ExplosionSoundRelease, rate)
	rumble := tone(55.0, WaveSine, constants.ExplosionSoundDuration, constants.ExplosionSoundAttack, constants.ExplosionSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(noise, 0.6),
		newVolume(rumble, 0.4),
	)
	return newVolume(mixed, cfg.volume(SoundExplosion))
}

// CreateLevelUpSound generates a rising C major arpeggio
func CreateLevelUpSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	return newVolume(arpeggio([]float64{523.25, 659.25, 783.99, 1046.50}, WaveSine, rate), cfg.volume(SoundLevelUp))
}

// CreateGameOverSound generates a falling arpeggio
func CreateGameOverSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	return newVolume(arpeggio([]float64{392.00, 329.63, 261.63}, WaveSquare, rate), cfg.volume(SoundGameOver))
}

// GetSoundEffect returns a fresh streamer for the cue, nil for an unknown type
func GetSoundEffect(st SoundType, cfg *AudioConfig) beep.Streamer {
	switch st {
	case SoundCatch:
		return CreateCatchSound(cfg)
	case SoundBonus:
		return CreateBonusSound(cfg)
	case SoundPowerUp:
		return CreatePowerUpSound(cfg)
	case SoundShieldBreak:
		return CreateShieldBreakSound(cfg)
	case SoundExplosion:
		return CreateExplosionSound(cfg)
	case SoundLevelUp:
		return CreateLevelUpSound(cfg)
	case SoundGameOver:
		return CreateGameOverSound(cfg)
	default:
		return nil
	}
}
