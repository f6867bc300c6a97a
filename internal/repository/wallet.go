package repository

import (
	"context"

	"github.com/surgearcade/portal/internal/domain"
)

// Wallet defines the interface for coin balance persistence outside of shop
// transactions (reads and reward credits).
type Wallet interface {
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	// Credit atomically adds amount to the balance and returns the updated
	// wallet. Amount must be positive; validation happens in the service.
	Credit(ctx context.Context, userID string, amount int) (*domain.Wallet, error)
}
