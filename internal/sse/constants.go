package sse

import "time"

// Buffer sizes
const (
	BroadcastBufferSize = 128
	ClientEventBuffer   = 32
	ClientChannelBuffer = 8
)

// KeepaliveInterval is how often an idle stream gets a ping
const KeepaliveInterval = 30 * time.Second

// Stream-only event types. Bus events keep their own type names.
const (
	EventTypeConnected = "connected"
	EventTypeSnapshot  = "state.snapshot"
	EventTypeKeepalive = "keepalive"
)

// Query parameters
const (
	QueryTypes = "types"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Forwarding event to profile streams"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
)
