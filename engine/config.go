package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/lane-catcher/constants"
)

// Config holds the tuning of a session
// Zero values are not defaults; start from DefaultConfig
type Config struct {
	// TimeLimit is the session length in seconds when Start is called without WithTimeLimit
	TimeLimit int

	// BaseSpeed is the fall speed of a level-1 item in track units per frame
	BaseSpeed float64
	// SpeedStep is added to the base speed on every level-up
	SpeedStep float64
	// BananaBonus is added on top of the base speed for bananas
	BananaBonus float64
	// SlowFactor scales every item's speed while TimeSlow is active
	SlowFactor float64

	MagnetDuration   time.Duration
	TimeSlowDuration time.Duration

	// LevelUpAt lists remaining-seconds values that raise the level when the countdown reaches them
	LevelUpAt []int

	SpawnIntervalBase time.Duration
	SpawnIntervalStep time.Duration
	SpawnIntervalMin  time.Duration

	Spawn SpawnTable
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		TimeLimit:         constants.DefaultTimeLimit,
		BaseSpeed:         constants.DefaultBaseSpeed,
		SpeedStep:         constants.DefaultSpeedStep,
		BananaBonus:       constants.DefaultBananaBonus,
		SlowFactor:        constants.DefaultSlowFactor,
		MagnetDuration:    constants.DefaultMagnetDuration,
		TimeSlowDuration:  constants.DefaultTimeSlowDuration,
		LevelUpAt:         append([]int(nil), constants.LevelUpAtRemaining...),
		SpawnIntervalBase: constants.SpawnIntervalBase,
		SpawnIntervalStep: constants.SpawnIntervalStep,
		SpawnIntervalMin:  constants.SpawnIntervalMin,
		Spawn:             DefaultSpawnTable(),
	}
}

// Validate rejects tuning the engine cannot run with
func (c Config) Validate() error {
	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimeLimit, c.TimeLimit)
	}
	if c.BaseSpeed <= 0 {
		return fmt.Errorf("%w: base speed %v", ErrInvalidConfig, c.BaseSpeed)
	}
	if c.SpeedStep < 0 || c.BananaBonus < 0 {
		return fmt.Errorf("%w: negative speed step or banana bonus", ErrInvalidConfig)
	}
	if c.SlowFactor <= 0 || c.SlowFactor > 1 {
		return fmt.Errorf("%w: slow factor %v outside (0,1]", ErrInvalidConfig, c.SlowFactor)
	}
	if c.MagnetDuration <= 0 || c.TimeSlowDuration <= 0 {
		return fmt.Errorf("%w: effect durations must be positive", ErrInvalidConfig)
	}
	if c.SpawnIntervalMin <= 0 || c.SpawnIntervalBase < c.SpawnIntervalMin || c.SpawnIntervalStep < 0 {
		return fmt.Errorf("%w: spawn interval base=%v step=%v min=%v",
			ErrInvalidConfig, c.SpawnIntervalBase, c.SpawnIntervalStep, c.SpawnIntervalMin)
	}
	return c.Spawn.Validate()
}

// SpawnInterval is the delay before the next spawn at the given level
func (c Config) SpawnInterval(level int) time.Duration {
	d := c.SpawnIntervalBase - time.Duration(level)*c.SpawnIntervalStep
	return max(d, c.SpawnIntervalMin)
}

func (c Config) levelsUpAt(remaining int) bool {
	for _, r := range c.LevelUpAt {
		if r == remaining {
			return true
		}
	}
	return false
}

// SpawnTable is the ordered cumulative probability table for item kinds
// Bomb comes first with a level-scaled share, then the fixed shares, Apple takes the rest
type SpawnTable struct {
	BombBase     float64
	BombPerLevel float64
	BombCap      float64
	Banana       float64
	Shield       float64
	Magnet       float64
	TimeSlow     float64
}

// DefaultSpawnTable returns the stock split
func DefaultSpawnTable() SpawnTable {
	return SpawnTable{
		BombBase:     constants.BombShareBase,
		BombPerLevel: constants.BombSharePerLevel,
		BombCap:      constants.BombShareCap,
		Banana:       constants.BananaShare,
		Shield:       constants.ShieldShare,
		Magnet:       constants.MagnetShare,
		TimeSlow:     constants.TimeSlowShare,
	}
}

// Validate requires every share non-negative and the capped bomb share plus the fixed
// shares to leave room for apples
func (t SpawnTable) Validate() error {
	for _, s := range []float64{t.BombBase, t.BombPerLevel, t.BombCap, t.Banana, t.Shield, t.Magnet, t.TimeSlow} {
		if s < 0 {
			return fmt.Errorf("%w: negative spawn share", ErrInvalidConfig)
		}
	}
	if t.BombBase > t.BombCap {
		return fmt.Errorf("%w: bomb base share %v above cap %v", ErrInvalidConfig, t.BombBase, t.BombCap)
	}
	if total := t.BombCap + t.fixedShare(); total >= 1 {
		return fmt.Errorf("%w: spawn shares sum to %v, apples starved", ErrInvalidConfig, total)
	}
	return nil
}

func (t SpawnTable) fixedShare() float64 {
	return t.Banana + t.Shield + t.Magnet + t.TimeSlow
}

// BombShare is the bomb probability at a level, capped at BombCap
func (t SpawnTable) BombShare(level int) float64 {
	return min(t.BombBase+t.BombPerLevel*float64(level-1), t.BombCap)
}

// Pick maps a uniform draw in [0,1) to an item kind
func (t SpawnTable) Pick(r float64, level int) ItemKind {
	edge := t.BombShare(level)
	if r < edge {
		return KindBomb
	}
	for _, slot := range [...]struct {
		kind  ItemKind
		share float64
	}{
		{KindBanana, t.Banana},
		{KindShield, t.Shield},
		{KindMagnet, t.Magnet},
		{KindTimeSlow, t.TimeSlow},
	} {
		edge += slot.share
		if r < edge {
			return slot.kind
		}
	}
	return KindApple
}
