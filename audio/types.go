package audio

import (
	"errors"
	"fmt"
)

// SoundType identifies a gameplay cue
type SoundType int

const (
	SoundCatch       SoundType = iota // Apple caught
	SoundBonus                        // Banana caught
	SoundPowerUp                      // Shield, Magnet or TimeSlow raised
	SoundShieldBreak                  // Shield absorbed a bomb
	SoundExplosion                    // Bomb ended the session
	SoundLevelUp                      // Countdown threshold reached
	SoundGameOver                     // Session ended without a bomb
	soundTypeCount
)

var soundNames = [soundTypeCount]string{
	"catch", "bonus", "powerup", "shield_break", "explosion", "levelup", "gameover",
}

func (s SoundType) String() string {
	if s >= 0 && s < soundTypeCount {
		return soundNames[s]
	}
	return fmt.Sprintf("SoundType(%d)", int(s))
}

// ParseSoundType maps a config key such as "catch" to its SoundType
func ParseSoundType(name string) (SoundType, error) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSound, name)
}

// Sink accepts cues; Player is the speaker-backed implementation
type Sink interface {
	Play(st SoundType)
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled")
	ErrUnknownSound  = errors.New("unknown sound")
)
