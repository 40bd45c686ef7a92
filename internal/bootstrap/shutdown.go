package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/HabitQuest_Go/internal/persistence"
	"github.com/osse101/HabitQuest_Go/internal/server"
	"github.com/osse101/HabitQuest_Go/internal/sse"
	"github.com/osse101/HabitQuest_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server      *server.Server
	ResetWorker *worker.PeriodResetWorker
	Adapter     *persistence.Adapter
	Hub         *sse.Hub
	Store       *Store
}

// GracefulShutdown stops the application in order:
// 1. HTTP server (stop accepting new requests, end open streams)
// 2. Period reset schedule (wait for a running sweep)
// 3. Document adapter (stop polling, flush debounced saves)
// 4. SSE hub
// 5. Store connection
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.ResetWorker != nil {
		if err := c.ResetWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerShutdownFailed, "error", err)
		}
	}

	if c.Adapter != nil {
		slog.Info(LogMsgFlushingDocuments)
		if err := c.Adapter.Close(ctx); err != nil {
			slog.Error(LogMsgAdapterCloseFailed, "error", err)
		}
	}

	if c.Hub != nil {
		slog.Info(LogMsgStoppingEventStreams)
		c.Hub.Stop()
	}

	if c.Store != nil {
		slog.Info(LogMsgClosingStore)
		if err := c.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
