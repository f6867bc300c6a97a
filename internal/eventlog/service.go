package eventlog

import (
	"context"
	"encoding/json"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/event"
	"github.com/surgearcade/portal/internal/logger"
)

// Service persists domain events for auditing
type Service interface {
	// Subscribe registers the event logger on all audited event types
	Subscribe(bus event.Bus) error

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AuditedEventTypes lists every event type written to the audit log.
var AuditedEventTypes = []event.Type{
	event.Type(domain.EventTypeItemPurchased),
	event.Type(domain.EventTypeItemEquipped),
	event.Type(domain.EventTypeCoinsCredited),
	event.Type(domain.EventTypeRewardClaimed),
	event.Type(domain.EventTypeGameSessionEnded),
	event.Type(domain.EventTypeDailyRolloverDone),
}

// Subscribe registers the audit handler for every audited event type
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range AuditedEventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent flattens the typed payload to a map and writes it to the log
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := payloadToMap(evt.Payload)
	if err != nil {
		log.Debug(LogMsgPayloadNotLoggable, "type", evt.Type, "error", err)
		return nil
	}

	var userID *string
	if uid, ok := payload[PayloadKeyUserID].(string); ok {
		userID = &uid
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, payload); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", userID)
	return nil
}

// payloadToMap converts a typed event payload to a generic map through its
// JSON form.
func payloadToMap(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
