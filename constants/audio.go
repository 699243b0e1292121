package constants

import "time"

// Audio Engine Timing
const (
	// AudioBufferDuration is the speaker buffer length passed to the output device
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two plays of the same cue
	MinSoundGap = 50 * time.Millisecond

	DefaultSampleRate = 48000
)

// Catch Sound Timing (apple pop)
const (
	CatchSoundDuration = 90 * time.Millisecond
	CatchSoundAttack   = 5 * time.Millisecond
	CatchSoundRelease  = 60 * time.Millisecond
)

// Bonus Sound Timing (banana two-note chime)
const (
	BonusSoundNote1Duration = 80 * time.Millisecond
	BonusSoundNote2Duration = 240 * time.Millisecond
	BonusSoundAttack        = 5 * time.Millisecond
	BonusSoundNote1Release  = 40 * time.Millisecond
	BonusSoundNote2Release  = 180 * time.Millisecond
)

// Power-up Sound Timing (rising bell)
const (
	PowerUpSoundDuration           = 500 * time.Millisecond
	PowerUpSoundAttack             = 5 * time.Millisecond
	PowerUpSoundFundamentalRelease = 450 * time.Millisecond
	PowerUpSoundOvertoneRelease    = 200 * time.Millisecond
)

// Shield Break Sound Timing
const (
	ShieldBreakSoundDuration = 250 * time.Millisecond
	ShieldBreakSoundAttack   = 5 * time.Millisecond
	ShieldBreakSoundRelease  = 200 * time.Millisecond
)

// Explosion Sound Timing
const (
	ExplosionSoundDuration = 600 * time.Millisecond
	ExplosionSoundAttack   = 10 * time.Millisecond
	ExplosionSoundRelease  = 500 * time.Millisecond
)

// Level-up and game-over share the arpeggio note length
const (
	ArpeggioNoteDuration = 110 * time.Millisecond
	ArpeggioNoteAttack   = 5 * time.Millisecond
	ArpeggioNoteRelease  = 60 * time.Millisecond
)
