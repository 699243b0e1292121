package network

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/lane-catcher/engine"
)

// Message types
const (
	// Inbound
	MsgPose  = "pose"
	MsgStart = "start"
	MsgStop  = "stop"

	// Outbound
	MsgState   = "state"
	MsgSpawn   = "spawn"
	MsgRemove  = "remove"
	MsgRender  = "render"
	MsgScore   = "score"
	MsgTime    = "time"
	MsgBasket  = "basket"
	MsgEffects = "effects"
	MsgEnd     = "end"
	MsgError   = "error"
)

// Sentinel errors
var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrMalformed      = errors.New("malformed message")
)

// Command is an inbound client message
//
//	{"type":"pose","lane":"Left"}
//	{"type":"start","time_limit":60}
//	{"type":"stop"}
type Command struct {
	Type      string `json:"type"`
	Lane      string `json:"lane,omitempty"`
	TimeLimit int    `json:"time_limit,omitempty"`
}

// DecodeCommand parses and checks an inbound frame
// Lane values are passed through untouched; invalid lanes are dropped by the receiver
func DecodeCommand(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch c.Type {
	case MsgPose, MsgStart, MsgStop:
		return c, nil
	case "":
		return c, fmt.Errorf("%w: missing type", ErrMalformed)
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownMessage, c.Type)
	}
}

// Outbound payloads, one per event

type stateMessage struct {
	Type  string           `json:"type"`
	State engine.GameState `json:"state"`
}

type spawnMessage struct {
	Type string      `json:"type"`
	Item engine.Item `json:"item"`
}

type removeMessage struct {
	Type string `json:"type"`
	ID   uint64 `json:"id"`
}

type renderMessage struct {
	Type  string        `json:"type"`
	Items []engine.Item `json:"items"`
}

type scoreMessage struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
	Level int    `json:"level"`
}

type timeMessage struct {
	Type      string `json:"type"`
	Remaining int    `json:"remaining"`
}

type basketMessage struct {
	Type string      `json:"type"`
	Lane engine.Lane `json:"lane"`
}

type effectsMessage struct {
	Type    string             `json:"type"`
	Effects engine.EffectState `json:"effects"`
}

type endMessage struct {
	Type   string            `json:"type"`
	Result engine.GameResult `json:"result"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func encodeError(err error) []byte {
	b, _ := json.Marshal(errorMessage{Type: MsgError, Error: err.Error()})
	return b
}
