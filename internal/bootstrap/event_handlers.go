package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/surgearcade/portal/internal/challenge"
	"github.com/surgearcade/portal/internal/event"
	"github.com/surgearcade/portal/internal/eventlog"
)

// EventHandlerDependencies holds the dependencies needed for event handler
// registration.
type EventHandlerDependencies struct {
	EventBus         event.Bus
	ChallengeService challenge.Service
	EventLogService  eventlog.Service
}

// RegisterEventHandlers sets up all event subscribers:
// - challenge progress handlers (purchases, equips, game sessions)
// - the audit event logger
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	challenge.RegisterHandlers(deps.EventBus, deps.ChallengeService)

	if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLog, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}
