package challenge

import (
	"context"
	"fmt"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/event"
)

// RegisterHandlers subscribes challenge progress tracking to the portal
// events that advance goals.
func RegisterHandlers(bus event.Bus, svc Service) {
	bus.Subscribe(event.Type(domain.EventTypeItemPurchased), func(ctx context.Context, evt event.Event) error {
		payload, ok := evt.Payload.(domain.ItemPurchasedPayload)
		if !ok {
			return fmt.Errorf("unexpected payload type for %s", evt.Type)
		}
		if err := svc.RecordProgress(ctx, payload.UserID, domain.GoalBuyItems, 1); err != nil {
			return err
		}
		return svc.RecordProgress(ctx, payload.UserID, domain.GoalSpendCoins, payload.Price)
	})

	bus.Subscribe(event.Type(domain.EventTypeItemEquipped), func(ctx context.Context, evt event.Event) error {
		payload, ok := evt.Payload.(domain.ItemEquippedPayload)
		if !ok {
			return fmt.Errorf("unexpected payload type for %s", evt.Type)
		}
		return svc.RecordProgress(ctx, payload.UserID, domain.GoalEquipItems, 1)
	})

	bus.Subscribe(event.Type(domain.EventTypeGameSessionEnded), func(ctx context.Context, evt event.Event) error {
		payload, ok := evt.Payload.(domain.GameSessionEndedPayload)
		if !ok {
			return fmt.Errorf("unexpected payload type for %s", evt.Type)
		}
		if err := svc.RecordProgress(ctx, payload.UserID, domain.GoalPlayGames, 1); err != nil {
			return err
		}
		if payload.Score > 0 {
			return svc.RecordProgress(ctx, payload.UserID, domain.GoalHighScore, payload.Score)
		}
		return nil
	})
}
