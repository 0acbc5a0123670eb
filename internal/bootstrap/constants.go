package bootstrap

import "time"

// Resilient publisher defaults, used when the environment does not override
const (
	EventDefaultMaxRetries     = 3
	EventDefaultRetryDelay     = 500 * time.Millisecond
	EventDefaultDeadLetterPath = "data/deadletter.jsonl"

	DirPermission = 0755
)

// Log messages for startup and shutdown
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgServerStopped              = "Server stopped"
	LogMsgShuttingDownEventPublisher = "Flushing event publisher..."
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgServiceShutdownFailed      = " service shutdown failed"
)
