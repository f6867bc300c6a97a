package wallet

import (
	"context"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/event"
	"github.com/surgearcade/portal/internal/logger"
	"github.com/surgearcade/portal/internal/metrics"
	"github.com/surgearcade/portal/internal/repository"
)

// Service exposes coin balance reads and credits. Debits only happen inside
// shop purchase transactions, never through this service.
type Service interface {
	GetBalance(ctx context.Context, userID string) (*domain.Wallet, error)
	Credit(ctx context.Context, userID string, amount int, reason string) (*domain.Wallet, error)
}

type service struct {
	repo repository.Wallet
	bus  event.Bus
}

func NewService(repo repository.Wallet, bus event.Bus) Service {
	return &service{repo: repo, bus: bus}
}

func (s *service) GetBalance(ctx context.Context, userID string) (*domain.Wallet, error) {
	w, err := s.repo.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrUserNotFound
	}
	return w, nil
}

func (s *service) Credit(ctx context.Context, userID string, amount int, reason string) (*domain.Wallet, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	w, err := s.repo.Credit(ctx, userID, amount)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrUserNotFound
	}

	metrics.CoinsAwarded.Add(float64(amount))
	log := logger.FromContext(ctx)
	log.Info("Wallet credited", "user_id", userID, "amount", amount, "reason", reason)

	if s.bus != nil {
		evt := event.New(domain.EventTypeCoinsCredited, domain.CoinsCreditedPayload{
			UserID:     userID,
			Amount:     amount,
			Reason:     reason,
			NewBalance: w.Balance,
		})
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn("Event publish failed", "type", domain.EventTypeCoinsCredited, "error", err)
		}
	}

	return w, nil
}
