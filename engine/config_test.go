package engine

import (
	"errors"
	"testing"
	"time"
)

func TestSpawnInterval(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 1800 * time.Millisecond},
		{3, 1400 * time.Millisecond},
		{5, 1000 * time.Millisecond},
		{6, 800 * time.Millisecond},
		{10, 800 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := cfg.SpawnInterval(tt.level); got != tt.want {
			t.Errorf("SpawnInterval(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSpawnTablePick(t *testing.T) {
	table := DefaultSpawnTable()
	tests := []struct {
		draw  float64
		level int
		want  ItemKind
	}{
		{0.0, 1, KindBomb},
		{0.149, 1, KindBomb},
		{0.15, 1, KindBanana},
		{0.249, 1, KindBanana},
		{0.26, 1, KindShield},
		{0.31, 1, KindMagnet},
		{0.36, 1, KindTimeSlow},
		{0.41, 1, KindApple},
		{0.999, 1, KindApple},
		// level 3 bombs take 0.25
		{0.20, 3, KindBomb},
		{0.26, 3, KindBanana},
		// capped at 0.30 from level 4 on
		{0.29, 9, KindBomb},
		{0.31, 9, KindBanana},
	}
	for _, tt := range tests {
		if got := table.Pick(tt.draw, tt.level); got != tt.want {
			t.Errorf("Pick(%v, level %d) = %v, want %v", tt.draw, tt.level, got, tt.want)
		}
	}
}

func TestBombShareCapped(t *testing.T) {
	table := DefaultSpawnTable()
	if got := table.BombShare(1); !approx(got, 0.15) {
		t.Errorf("Level 1 bomb share %v, want 0.15", got)
	}
	if got := table.BombShare(4); !approx(got, 0.30) {
		t.Errorf("Level 4 bomb share %v, want 0.30", got)
	}
	if got := table.BombShare(50); !approx(got, 0.30) {
		t.Errorf("Level 50 bomb share %v, want cap 0.30", got)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero time limit", func(c *Config) { c.TimeLimit = 0 }, ErrInvalidTimeLimit},
		{"zero base speed", func(c *Config) { c.BaseSpeed = 0 }, ErrInvalidConfig},
		{"slow factor above one", func(c *Config) { c.SlowFactor = 1.5 }, ErrInvalidConfig},
		{"zero magnet duration", func(c *Config) { c.MagnetDuration = 0 }, ErrInvalidConfig},
		{"min above base interval", func(c *Config) { c.SpawnIntervalMin = 3 * time.Second }, ErrInvalidConfig},
		{"shares starve apples", func(c *Config) { c.Spawn.Banana = 0.6 }, ErrInvalidConfig},
		{"negative share", func(c *Config) { c.Spawn.Shield = -0.1 }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseSpeed = -1
	if _, err := New(cfg, NewManualScheduler()); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if _, err := New(DefaultConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil scheduler, got %v", err)
	}
}

func TestLaneParsing(t *testing.T) {
	for _, name := range []string{"Left", "Center", "Right"} {
		lane, ok := ParseLane(name)
		if !ok || lane.String() != name {
			t.Errorf("ParseLane(%q) = %v, %v", name, lane, ok)
		}
	}
	for _, bad := range []string{"", "left", "CENTER", "Up", " Right"} {
		if _, ok := ParseLane(bad); ok {
			t.Errorf("ParseLane(%q) accepted", bad)
		}
	}

	var l Lane
	if err := l.UnmarshalText([]byte("Middle")); err == nil {
		t.Error("Expected error for unknown lane text")
	}
	if _, err := Lane(9).MarshalText(); err == nil {
		t.Error("Expected error marshalling invalid lane")
	}
}

func TestKindPoints(t *testing.T) {
	want := map[ItemKind]int{
		KindApple: 100, KindBanana: 200, KindBomb: 0,
		KindShield: 0, KindMagnet: 0, KindTimeSlow: 0,
	}
	for k, p := range want {
		if got := k.Points(); got != p {
			t.Errorf("%v.Points() = %d, want %d", k, got, p)
		}
	}
	if KindBomb.Collectible() || !KindTimeSlow.Collectible() {
		t.Error("Only bombs are non-collectible")
	}
}
