package bootstrap

import (
	"context"
	"log/slog"

	"github.com/entroverse/entroverse-api/internal/event"
	"github.com/entroverse/entroverse-api/internal/quest"
	"github.com/entroverse/entroverse-api/internal/server"
	"github.com/entroverse/entroverse-api/internal/sse"
	"github.com/entroverse/entroverse-api/internal/state"
)

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Server             *server.Server
	Engine             state.Engine
	QuestService       quest.Service
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the application components in order: the HTTP
// server first so no new requests arrive, then the engine and quest service
// so pending sweeps and completions drain, then the SSE hub, and finally
// the publisher so retried events get flushed or dead-lettered.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if err := components.Engine.Shutdown(ctx); err != nil {
		slog.Error("state" + LogMsgServiceShutdownFailed, "error", err)
	}

	if err := components.QuestService.Shutdown(ctx); err != nil {
		slog.Error("quest" + LogMsgServiceShutdownFailed, "error", err)
	}

	components.Hub.Stop()

	slog.Info(LogMsgShuttingDownEventPublisher)
	components.ResilientPublisher.Wait()

	slog.Info(LogMsgServerStopped)
}
