package constants

import "time"

// Track geometry, all on the 0-100 vertical scale
const (
	// TrackLength is the far edge; an item past it is missed
	TrackLength = 100.0

	// CatchBandTop and CatchBandBottom bound the basket rows (top inclusive, bottom exclusive)
	CatchBandTop    = 80.0
	CatchBandBottom = 95.0

	// MagnetPullLine is the depth after which an active magnet drags collectibles to the basket lane
	MagnetPullLine = 50.0
)

// Session defaults
const (
	DefaultTimeLimit = 60 // seconds

	// DefaultBaseSpeed is in track units per frame
	DefaultBaseSpeed   = 0.5
	DefaultSpeedStep   = 0.1
	DefaultBananaBonus = 0.3

	// DefaultSlowFactor scales fall speed while TimeSlow is active
	DefaultSlowFactor = 0.5

	DefaultMagnetDuration   = 5000 * time.Millisecond
	DefaultTimeSlowDuration = 5000 * time.Millisecond
)

// Level-up thresholds in remaining seconds, compared literally regardless of the time limit
var LevelUpAtRemaining = []int{40, 20}

// Spawn cadence: interval = max(SpawnIntervalMin, SpawnIntervalBase - level*SpawnIntervalStep)
const (
	SpawnIntervalBase = 2000 * time.Millisecond
	SpawnIntervalStep = 200 * time.Millisecond
	SpawnIntervalMin  = 800 * time.Millisecond
)

// Spawn table shares; Apple takes the remainder
const (
	BombShareBase     = 0.15
	BombSharePerLevel = 0.05
	BombShareCap      = 0.30
	BananaShare       = 0.10
	ShieldShare       = 0.05
	MagnetShare       = 0.05
	TimeSlowShare     = 0.05
)

// Item points
const (
	ApplePoints  = 100
	BananaPoints = 200
)
