package audio

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"github.com/lixenwraith/lane-catcher/constants"
)

// AudioConfig controls the cue player
type AudioConfig struct {
	Enabled       bool
	Muted         bool
	MasterVolume  float64
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns the stock mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[SoundType]float64{
			SoundCatch:       0.6,
			SoundBonus:       0.7,
			SoundPowerUp:     0.8,
			SoundShieldBreak: 0.8,
			SoundExplosion:   1.0,
			SoundLevelUp:     0.7,
			SoundGameOver:    0.7,
		},
		SampleRate: constants.DefaultSampleRate,
	}
}

// LoadAudioConfig returns the defaults with environment overrides applied
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from LANE_CATCHER_* variables; malformed values are skipped
func (c *AudioConfig) ApplyEnv() {
	if enabled := os.Getenv("LANE_CATCHER_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Enabled = val
		}
	}

	// 0-100 on the wire, 0.0-1.0 internally
	if volume := os.Getenv("LANE_CATCHER_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if effectVols := os.Getenv("LANE_CATCHER_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			c.SetVolumes(volumes)
		}
	}

	if sampleRate := os.Getenv("LANE_CATCHER_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			c.SampleRate = val
		}
	}
}

// SetVolumes applies per-cue volumes keyed by cue name, ignoring unknown names
func (c *AudioConfig) SetVolumes(volumes map[string]float64) {
	if c.EffectVolumes == nil {
		c.EffectVolumes = make(map[SoundType]float64, len(volumes))
	}
	for name, v := range volumes {
		st, err := ParseSoundType(name)
		if err != nil {
			log.Printf("audio: %v", err)
			continue
		}
		c.EffectVolumes[st] = min(max(v, 0), 1)
	}
}

// volume is the effective gain of a cue
func (c *AudioConfig) volume(st SoundType) float64 {
	v, ok := c.EffectVolumes[st]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}
