package engine

import (
	"fmt"

	"github.com/lixenwraith/lane-catcher/constants"
)

// Lane is one of the three horizontal positions shared by the basket and falling items
type Lane uint8

const (
	LaneLeft Lane = iota
	LaneCenter
	LaneRight
	laneCount
)

var laneNames = [laneCount]string{"Left", "Center", "Right"}

// Lanes lists every valid lane in screen order
var Lanes = [laneCount]Lane{LaneLeft, LaneCenter, LaneRight}

func (l Lane) String() string {
	if l < laneCount {
		return laneNames[l]
	}
	return fmt.Sprintf("Lane(%d)", uint8(l))
}

// Valid reports whether l is one of the three lanes
func (l Lane) Valid() bool {
	return l < laneCount
}

// ParseLane maps a lane signal to a Lane, matching the exact names "Left", "Center" and "Right"
func ParseLane(signal string) (Lane, bool) {
	for i, name := range laneNames {
		if signal == name {
			return Lane(i), true
		}
	}
	return 0, false
}

func (l Lane) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid lane %d", uint8(l))
	}
	return []byte(laneNames[l]), nil
}

func (l *Lane) UnmarshalText(b []byte) error {
	lane, ok := ParseLane(string(b))
	if !ok {
		return fmt.Errorf("unknown lane %q", b)
	}
	*l = lane
	return nil
}

// ItemKind identifies what a falling item does when caught
type ItemKind uint8

const (
	KindApple ItemKind = iota
	KindBanana
	KindBomb
	KindShield
	KindMagnet
	KindTimeSlow
	kindCount
)

var kindNames = [kindCount]string{"Apple", "Banana", "Bomb", "Shield", "Magnet", "TimeSlow"}

func (k ItemKind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("ItemKind(%d)", uint8(k))
}

// Collectible reports whether the kind is eligible for magnet pull and magnet-assisted catch
func (k ItemKind) Collectible() bool {
	return k != KindBomb
}

// Points is the score awarded on catch, zero for everything but fruit
func (k ItemKind) Points() int {
	switch k {
	case KindApple:
		return constants.ApplePoints
	case KindBanana:
		return constants.BananaPoints
	default:
		return 0
	}
}

func (k ItemKind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("invalid item kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *ItemKind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if string(b) == name {
			*k = ItemKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown item kind %q", b)
}

// Item is a falling entity
// The engine owns the live instances; observers only ever receive copies
type Item struct {
	ID     uint64   `json:"id"`
	Kind   ItemKind `json:"kind"`
	Points int      `json:"points"`
	Lane   Lane     `json:"lane"`

	// Y runs from 0 at the spawn edge to 100 at the far edge
	Y float64 `json:"y"`

	// BaseSpeed is frozen at spawn; Speed is recomputed every tick from it
	BaseSpeed float64 `json:"base_speed"`
	Speed     float64 `json:"speed"`
}

// EffectState is the set of temporary modifiers currently applied to the session
type EffectState struct {
	Shield   bool `json:"shield"`
	Magnet   bool `json:"magnet"`
	TimeSlow bool `json:"time_slow"`
}

// Session end reasons
const (
	ReasonBomb    = "Bomb"
	ReasonTimeout = "Timeout"
	ReasonManual  = "Manual"
)

// GameResult is delivered once per session when it ends
type GameResult struct {
	SessionID string `json:"session_id"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	Reason    string `json:"reason"`
}

// GameState is a point-in-time copy of the session
type GameState struct {
	Active    bool        `json:"active"`
	SessionID string      `json:"session_id,omitempty"`
	Score     int         `json:"score"`
	Level     int         `json:"level"`
	Remaining int         `json:"remaining"`
	Lane      Lane        `json:"lane"`
	Effects   EffectState `json:"effects"`
	Items     int         `json:"items"`
}
