package bootstrap

import (
	"context"
	"log/slog"

	"github.com/surgearcade/portal/internal/event"
	"github.com/surgearcade/portal/internal/server"
	"github.com/surgearcade/portal/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	RolloverWorker     *worker.RolloverWorker
	ResilientPublisher *event.ResilientPublisher
	DeadLetterWriter   *event.DeadLetterWriter
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Rollover worker (cancel pending timers, finish in-flight work)
// 3. Event publisher (flush pending retries)
// 4. Dead-letter writer (close the file)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.RolloverWorker != nil {
		if err := components.RolloverWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgRolloverWorkerFailed, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if components.ResilientPublisher != nil {
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.DeadLetterWriter != nil {
		if err := components.DeadLetterWriter.Close(); err != nil {
			slog.Error("Dead-letter writer close failed", "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
