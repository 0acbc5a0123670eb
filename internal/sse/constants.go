package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second
)

// EventTypeKeepalive is the keepalive ping event type
const EventTypeKeepalive = "keepalive"

// EventTypeNotification is the type used for user-facing notification pushes
const EventTypeNotification = "notification"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
)
