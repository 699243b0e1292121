// Package config layers the binary's settings: defaults, an optional TOML file,
// environment overrides, then command-line flags applied by the caller
package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/lane-catcher/audio"
	"github.com/lixenwraith/lane-catcher/constants"
	"github.com/lixenwraith/lane-catcher/engine"
	"github.com/lixenwraith/lane-catcher/input"
	"github.com/lixenwraith/lane-catcher/network"
)

// Sentinel errors
var (
	ErrUnknownLane = errors.New("unknown lane")
	ErrUnknownKeys = errors.New("unknown config keys")
)

// Config mirrors the TOML file layout
//
//	[game]
//	time_limit = 60
//	seed = 42
//
//	[audio]
//	master_volume = 0.5
//	volumes = { catch = 0.4 }
//
//	[input]
//	settle_ms = 120
//	keys = { left = ["a", "Left"] }
//	pose_aliases = { LEAN_L = "Left" }
//
//	[bridge]
//	listen = "127.0.0.1:7777"
type Config struct {
	Game   Game   `toml:"game"`
	Audio  Audio  `toml:"audio"`
	Input  Input  `toml:"input"`
	Bridge Bridge `toml:"bridge"`
}

// Game tunes the engine
type Game struct {
	TimeLimit   int     `toml:"time_limit"`
	BaseSpeed   float64 `toml:"base_speed"`
	SpeedStep   float64 `toml:"speed_step"`
	BananaBonus float64 `toml:"banana_bonus"`
	SlowFactor  float64 `toml:"slow_factor"`
	MagnetMs    int     `toml:"magnet_ms"`
	TimeSlowMs  int     `toml:"time_slow_ms"`
	LevelUpAt   []int   `toml:"level_up_at"`

	// Seed fixes the spawn sequence; 0 picks a fresh seed per run
	Seed uint64 `toml:"seed"`
}

// Audio configures the cue player
type Audio struct {
	Enabled      bool               `toml:"enabled"`
	Muted        bool               `toml:"muted"`
	MasterVolume float64            `toml:"master_volume"`
	Volumes      map[string]float64 `toml:"volumes"`
	SampleRate   int                `toml:"sample_rate"`
}

// Input configures keys and the pose stream
type Input struct {
	SettleMs    int                 `toml:"settle_ms"`
	Keys        map[string][]string `toml:"keys"`
	PoseAliases map[string]string   `toml:"pose_aliases"`
}

// Bridge configures the websocket bridge; an empty Listen disables it
type Bridge struct {
	Listen     string `toml:"listen"`
	MaxClients int    `toml:"max_clients"`
}

// Default returns the stock configuration
func Default() *Config {
	ec := engine.DefaultConfig()
	ac := audio.DefaultAudioConfig()

	volumes := make(map[string]float64, len(ac.EffectVolumes))
	for st, v := range ac.EffectVolumes {
		volumes[st.String()] = v
	}

	return &Config{
		Game: Game{
			TimeLimit:   ec.TimeLimit,
			BaseSpeed:   ec.BaseSpeed,
			SpeedStep:   ec.SpeedStep,
			BananaBonus: ec.BananaBonus,
			SlowFactor:  ec.SlowFactor,
			MagnetMs:    int(ec.MagnetDuration / time.Millisecond),
			TimeSlowMs:  int(ec.TimeSlowDuration / time.Millisecond),
			LevelUpAt:   ec.LevelUpAt,
		},
		Audio: Audio{
			Enabled:      ac.Enabled,
			Muted:        ac.Muted,
			MasterVolume: ac.MasterVolume,
			Volumes:      volumes,
			SampleRate:   ac.SampleRate,
		},
		Input: Input{
			SettleMs: int(constants.DefaultPoseSettle / time.Millisecond),
		},
		Bridge: Bridge{
			MaxClients: network.DefaultConfig().MaxClients,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides
// An empty path skips the file; keys the file sets that Config does not know are an error
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config read: %w", err)
		}
		if err := cfg.decode(string(data)); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overrides fields from LANE_CATCHER_* variables
// Audio variables are read by audio.AudioConfig.ApplyEnv when AudioConfig is built
func (c *Config) ApplyEnv() {
	if listen, ok := os.LookupEnv("LANE_CATCHER_LISTEN"); ok {
		c.Bridge.Listen = strings.TrimSpace(listen)
	}
}

// Validate checks everything that can be checked before the engine is built
func (c *Config) Validate() error {
	if _, err := c.ToEngine(); err != nil {
		return err
	}
	if _, err := c.PoseAliases(); err != nil {
		return err
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	if c.Input.SettleMs < 0 {
		return fmt.Errorf("[input] settle_ms must not be negative: %d", c.Input.SettleMs)
	}
	if c.Bridge.MaxClients <= 0 {
		return fmt.Errorf("[bridge] max_clients must be positive: %d", c.Bridge.MaxClients)
	}
	return nil
}

// ToEngine converts the [game] table into a validated engine.Config
func (c *Config) ToEngine() (engine.Config, error) {
	ec := engine.DefaultConfig()
	ec.TimeLimit = c.Game.TimeLimit
	ec.BaseSpeed = c.Game.BaseSpeed
	ec.SpeedStep = c.Game.SpeedStep
	ec.BananaBonus = c.Game.BananaBonus
	ec.SlowFactor = c.Game.SlowFactor
	ec.MagnetDuration = time.Duration(c.Game.MagnetMs) * time.Millisecond
	ec.TimeSlowDuration = time.Duration(c.Game.TimeSlowMs) * time.Millisecond
	ec.LevelUpAt = append([]int(nil), c.Game.LevelUpAt...)
	if err := ec.Validate(); err != nil {
		return ec, err
	}
	return ec, nil
}

// AudioConfig builds the player configuration, environment overrides applied last
func (c *Config) AudioConfig() *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.Muted = c.Audio.Muted
	ac.MasterVolume = min(max(c.Audio.MasterVolume, 0), 1)
	if c.Audio.SampleRate > 0 {
		ac.SampleRate = c.Audio.SampleRate
	}
	ac.SetVolumes(c.Audio.Volumes)
	ac.ApplyEnv()
	return ac
}

// KeyMap applies [input] keys over the default bindings
func (c *Config) KeyMap() (*input.KeyMap, error) {
	return input.ApplyBindings(input.DefaultKeyMap(), c.Input.Keys)
}

// PoseAliases resolves classifier labels to lanes
func (c *Config) PoseAliases() (map[string]engine.Lane, error) {
	out := make(map[string]engine.Lane, len(c.Input.PoseAliases))
	for label, name := range c.Input.PoseAliases {
		lane, ok := engine.ParseLane(name)
		if !ok {
			return nil, fmt.Errorf("[input] pose_aliases %q: %w %q", label, ErrUnknownLane, name)
		}
		out[label] = lane
	}
	return out, nil
}

// Settle is the pose stabilization window
func (c *Config) Settle() time.Duration {
	return time.Duration(c.Input.SettleMs) * time.Millisecond
}

// BridgeConfig builds the bridge configuration; nil when the bridge is disabled
func (c *Config) BridgeConfig(logger *log.Logger) *network.Config {
	if c.Bridge.Listen == "" {
		return nil
	}
	nc := network.DefaultConfig()
	nc.Address = c.Bridge.Listen
	nc.MaxClients = c.Bridge.MaxClients
	nc.Logger = logger
	return nc
}

// Encode writes c as TOML, usable as a starting config file
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
