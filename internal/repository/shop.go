package repository

import (
	"context"

	"github.com/surgearcade/portal/internal/domain"
)

// Shop defines the interface for entitlement and wallet persistence
type Shop interface {
	GetEntitlement(ctx context.Context, userID, itemID string) (*domain.Entitlement, error)
	ListEntitlements(ctx context.Context, userID string) ([]domain.Entitlement, error)
	GetEquipped(ctx context.Context, userID string, category domain.Category) (*domain.Entitlement, error)
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	BeginTx(ctx context.Context) (ShopTx, error)
}

// ShopTx defines the interface for shop transactions. Purchase and equip are
// each applied as one transaction so the ledger never exposes a partial
// state (coins debited without the grant, or two equipped items in one
// category).
type ShopTx interface {
	Tx
	// GetWalletForUpdate reads the wallet row with a row lock, serializing
	// concurrent purchases for the same user.
	GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error)
	SetWalletBalance(ctx context.Context, userID string, balance int) error
	GetEntitlement(ctx context.Context, userID, itemID string) (*domain.Entitlement, error)
	UpsertEntitlement(ctx context.Context, ent domain.Entitlement) error
	// UnequipCategory clears the equipped flag on every entitlement the user
	// holds in the category.
	UnequipCategory(ctx context.Context, userID string, category domain.Category) error
	// SetEquipped flips the equipped flag on one owned entitlement.
	SetEquipped(ctx context.Context, userID, itemID string, equipped bool) error
}
