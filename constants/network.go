package constants

import "time"

// Remote bridge
const (
	// DefaultBridgeAddr is used when the bridge is enabled without an explicit address
	DefaultBridgeAddr = "127.0.0.1:7777"

	// DefaultPoseSettle is how long a pose lane must hold before the basket follows it
	DefaultPoseSettle = 120 * time.Millisecond
)
