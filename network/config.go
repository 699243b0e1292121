// Package network bridges the engine to remote clients over websocket
//
// Remote pose producers send lane signals in, remote renderers receive every engine
// event out. A small HTTP surface exposes the session state and metrics.
package network

import (
	"log"
	"time"

	"github.com/lixenwraith/lane-catcher/constants"
)

// Config holds bridge configuration
type Config struct {
	// Address to bind, empty disables the bridge
	Address string

	// Connection limits
	MaxClients     int
	MaxMessageSize int64

	// Timing
	WriteTimeout time.Duration
	PongTimeout  time.Duration
	PingInterval time.Duration

	// Buffer sizes
	SendQueueSize      int
	BroadcastQueueSize int

	// Logger receives connection and request logs, nil uses the global logger
	Logger *log.Logger
}

// DefaultConfig returns defaults suitable for a local bridge
func DefaultConfig() *Config {
	return &Config{
		Address:            constants.DefaultBridgeAddr,
		MaxClients:         16,
		MaxMessageSize:     4 * 1024,
		WriteTimeout:       5 * time.Second,
		PongTimeout:        60 * time.Second,
		PingInterval:       54 * time.Second, // must be shorter than PongTimeout
		SendQueueSize:      256,
		BroadcastQueueSize: 1024,
	}
}

func (c *Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
