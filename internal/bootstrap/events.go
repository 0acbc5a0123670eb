package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/entroverse/entroverse-api/internal/event"
)

// InitializeEventSystem creates the in-memory event bus and wraps it in the
// resilient publisher so a failed dispatch retries off the request path.
func InitializeEventSystem() (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	deadLetterPath := EventDefaultDeadLetterPath
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("failed to create dead letter directory: %w", err)
	}

	resilientPublisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     EventDefaultMaxRetries,
		RetryDelay:     EventDefaultRetryDelay,
		DeadLetterPath: deadLetterPath,
	})

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, resilientPublisher, nil
}
