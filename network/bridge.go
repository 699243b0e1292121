package network

import (
	"encoding/json"

	"github.com/lixenwraith/lane-catcher/engine"
)

// Bridge is an engine.Observer that broadcasts every event to the hub's clients
// Methods run on the engine goroutine and never block
type Bridge struct {
	hub *Hub
}

// NewBridge creates an observer publishing to hub
func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) publish(v any) {
	if b.hub.Count() == 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		b.hub.logger.Printf("[BRIDGE] encode: %v", err)
		return
	}
	b.hub.Broadcast(data)
}

func (b *Bridge) ScoreChanged(score, level int) {
	b.publish(scoreMessage{Type: MsgScore, Score: score, Level: level})
}

func (b *Bridge) TimeUpdated(remaining int) {
	b.publish(timeMessage{Type: MsgTime, Remaining: remaining})
}

func (b *Bridge) BasketMoved(lane engine.Lane) {
	b.publish(basketMessage{Type: MsgBasket, Lane: lane})
}

func (b *Bridge) ItemSpawned(item engine.Item) {
	b.publish(spawnMessage{Type: MsgSpawn, Item: item})
}

func (b *Bridge) ItemRemoved(id uint64) {
	b.publish(removeMessage{Type: MsgRemove, ID: id})
}

func (b *Bridge) Render(items []engine.Item) {
	if items == nil {
		items = []engine.Item{}
	}
	b.publish(renderMessage{Type: MsgRender, Items: items})
}

func (b *Bridge) EffectsChanged(effects engine.EffectState) {
	b.publish(effectsMessage{Type: MsgEffects, Effects: effects})
}

func (b *Bridge) GameEnded(result engine.GameResult) {
	b.publish(endMessage{Type: MsgEnd, Result: result})
}

var _ engine.Observer = (*Bridge)(nil)
