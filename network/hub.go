package network

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"github.com/lixenwraith/lane-catcher/status"
)

// ErrHubFull is returned when the client limit is reached
var ErrHubFull = errors.New("bridge client limit reached")

// Hub maintains the set of active clients and broadcasts messages to them
// The client set is owned by the Run goroutine
type Hub struct {
	cfg    *Config
	game   Game
	logger *log.Logger

	clients    map[*Client]struct{}
	broadcast  chan []byte
	direct     chan directMessage
	register   chan joinRequest
	unregister chan *Client
	done       chan struct{}

	count       atomic.Int32
	statDropped *atomic.Int64
	statCmds    *atomic.Int64
}

// joinRequest carries a registration and its verdict from Run
type joinRequest struct {
	client *Client
	reply  chan error
}

type directMessage struct {
	client  *Client
	payload []byte
}

// NewHub creates a hub; stats may be nil
func NewHub(cfg *Config, game Game, stats *status.Registry) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if stats == nil {
		stats = status.NewRegistry()
	}
	return &Hub{
		cfg:         cfg,
		game:        game,
		logger:      cfg.logger(),
		clients:     make(map[*Client]struct{}),
		broadcast:   make(chan []byte, cfg.BroadcastQueueSize),
		direct:      make(chan directMessage, cfg.BroadcastQueueSize),
		register:    make(chan joinRequest),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		statDropped: stats.Counter("bridge.dropped"),
		statCmds:    stats.Counter("bridge.commands"),
	}
}

// Run handles registration and fan-out until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			close(c.send)
			delete(h.clients, c)
		}
		h.count.Store(0)
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Printf("[BRIDGE] hub shutting down, %d clients", len(h.clients))
			return

		case req := <-h.register:
			if len(h.clients) >= h.cfg.MaxClients {
				h.logger.Printf("[BRIDGE] client %s from %s rejected, hub full", req.client.id, req.client.addr)
				req.reply <- ErrHubFull
				continue
			}
			h.clients[req.client] = struct{}{}
			h.count.Store(int32(len(h.clients)))
			h.logger.Printf("[BRIDGE] client %s connected from %s", req.client.id, req.client.addr)
			req.reply <- nil

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			for c := range h.clients {
				h.deliver(c, msg)
			}

		case dm := <-h.direct:
			if _, ok := h.clients[dm.client]; ok {
				h.deliver(dm.client, dm.payload)
			}
		}
	}
}

// deliver drops a client whose queue is full
func (h *Hub) deliver(c *Client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		h.logger.Printf("[BRIDGE] client %s too slow, dropping", c.id)
		h.remove(c)
	}
}

func (h *Hub) remove(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int32(len(h.clients)))
	h.logger.Printf("[BRIDGE] client %s disconnected", c.id)
}

// Broadcast queues msg for every client without blocking
// Returns false if the queue is full and the message was dropped
func (h *Hub) Broadcast(msg []byte) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		h.statDropped.Add(1)
		return false
	}
}

// Send queues msg for a single client without blocking
func (h *Hub) Send(c *Client, msg []byte) bool {
	select {
	case h.direct <- directMessage{client: c, payload: msg}:
		return true
	default:
		h.statDropped.Add(1)
		return false
	}
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	return int(h.count.Load())
}

// join registers c, failing once the hub has stopped or is full
// The limit is checked by Run so concurrent joins cannot overshoot it
func (h *Hub) join(c *Client) error {
	reply := make(chan error, 1)
	select {
	case h.register <- joinRequest{client: c, reply: reply}:
		return <-reply
	case <-h.done:
		return context.Canceled
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// handle applies one inbound frame from c
func (h *Hub) handle(c *Client, data []byte) {
	cmd, err := DecodeCommand(data)
	if err != nil {
		h.Send(c, encodeError(err))
		return
	}
	h.statCmds.Add(1)

	switch cmd.Type {
	case MsgPose:
		h.game.Pose(cmd.Lane)
	case MsgStart:
		if err := h.game.Start(cmd.TimeLimit); err != nil {
			h.Send(c, encodeError(err))
		}
	case MsgStop:
		if err := h.game.Stop(); err != nil {
			h.Send(c, encodeError(err))
		}
	}
}
