package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/surgearcade/portal/internal/concurrency"
	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/event"
	"github.com/surgearcade/portal/internal/logger"
	"github.com/surgearcade/portal/internal/metrics"
	"github.com/surgearcade/portal/internal/repository"
	"github.com/surgearcade/portal/internal/rotation"
)

// PurchaseResult contains the result of a purchase operation
type PurchaseResult struct {
	Item       domain.CatalogItem `json:"item"`
	PricePaid  int                `json:"price_paid"`
	NewBalance int                `json:"new_balance"`
}

// Service defines the interface for shop ledger operations
type Service interface {
	Purchase(ctx context.Context, userID, itemID string) (*PurchaseResult, error)
	Equip(ctx context.Context, userID, itemID string) (*domain.Entitlement, error)
	Unequip(ctx context.Context, userID string, category domain.Category) error
	GetEquipped(ctx context.Context, userID string, category domain.Category) (*domain.Entitlement, error)
	ListEntitlements(ctx context.Context, userID string) ([]domain.Entitlement, error)
}

type service struct {
	repo    repository.Shop
	catalog rotation.Service
	bus     event.Bus
	locks   *concurrency.LockManager
	now     func() time.Time
}

// NewService creates a new shop service
func NewService(repo repository.Shop, catalog rotation.Service, bus event.Bus) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
		bus:     bus,
		locks:   concurrency.NewLockManager(),
		now:     time.Now,
	}
}

// Purchase debits the user's wallet and grants ownership of the item as a
// single transaction. The price is the server-side catalog price for the
// current day; the caller never supplies it.
func (s *service) Purchase(ctx context.Context, userID, itemID string) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Purchase called", "user_id", userID, "item_id", itemID)

	item, err := s.catalog.Item(ctx, domain.NewDateKey(s.now()), itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	ent, err := tx.GetEntitlement(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	if ent != nil && ent.Owned {
		metrics.PurchasesRejected.WithLabelValues("already_owned").Inc()
		return nil, domain.ErrAlreadyOwned
	}

	wallet, err := tx.GetWalletForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, domain.ErrUserNotFound
	}

	price := item.BasePrice
	if wallet.Balance < price {
		metrics.PurchasesRejected.WithLabelValues("insufficient_funds").Inc()
		return nil, fmt.Errorf("%w: balance %d, price %d", domain.ErrInsufficientFunds, wallet.Balance, price)
	}

	newBalance := wallet.Balance - price
	if err := tx.SetWalletBalance(ctx, userID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}

	if err := tx.UpsertEntitlement(ctx, domain.Entitlement{
		UserID:        userID,
		ItemID:        itemID,
		Category:      item.Category,
		Owned:         true,
		PurchasedAt:   s.now().UTC(),
		PurchasePrice: price,
	}); err != nil {
		return nil, fmt.Errorf("failed to grant entitlement: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit purchase", "error", err)
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	metrics.ItemsPurchased.WithLabelValues(string(item.Category)).Inc()
	metrics.CoinsSpent.Add(float64(price))

	s.publish(ctx, domain.EventTypeItemPurchased, domain.ItemPurchasedPayload{
		UserID:   userID,
		ItemID:   itemID,
		Category: item.Category,
		Price:    price,
	})

	log.Info("Purchase completed", "user_id", userID, "item_id", itemID, "price", price, "balance", newBalance)

	return &PurchaseResult{
		Item:       *item,
		PricePaid:  price,
		NewBalance: newBalance,
	}, nil
}

// Equip marks the item as the active one for its category. Every other
// entitlement the user holds in the category is unequipped in the same
// transaction, so at most one equipped item per category is ever observable.
func (s *service) Equip(ctx context.Context, userID, itemID string) (*domain.Entitlement, error) {
	log := logger.FromContext(ctx)
	log.Info("Equip called", "user_id", userID, "item_id", itemID)

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	ent, err := tx.GetEntitlement(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	if ent == nil || !ent.Owned {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotOwned, itemID)
	}

	if err := tx.UnequipCategory(ctx, userID, ent.Category); err != nil {
		return nil, fmt.Errorf("failed to unequip category: %w", err)
	}
	if err := tx.SetEquipped(ctx, userID, itemID, true); err != nil {
		return nil, fmt.Errorf("failed to equip item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit equip", "error", err)
		return nil, fmt.Errorf("failed to commit equip: %w", err)
	}

	metrics.ItemsEquipped.WithLabelValues(string(ent.Category)).Inc()

	s.publish(ctx, domain.EventTypeItemEquipped, domain.ItemEquippedPayload{
		UserID:   userID,
		ItemID:   itemID,
		Category: ent.Category,
	})

	ent.Equipped = true
	return ent, nil
}

// Unequip clears the equipped slot for a category. Clearing an already
// empty slot is a no-op.
func (s *service) Unequip(ctx context.Context, userID string, category domain.Category) error {
	log := logger.FromContext(ctx)
	log.Info("Unequip called", "user_id", userID, "category", string(category))

	if !category.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCategory, category)
	}

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.UnequipCategory(ctx, userID, category); err != nil {
		return fmt.Errorf("failed to unequip category: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit unequip: %w", err)
	}
	return nil
}

func (s *service) GetEquipped(ctx context.Context, userID string, category domain.Category) (*domain.Entitlement, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCategory, category)
	}
	return s.repo.GetEquipped(ctx, userID, category)
}

func (s *service) ListEntitlements(ctx context.Context, userID string) ([]domain.Entitlement, error) {
	return s.repo.ListEntitlements(ctx, userID)
}

// publish sends an event after a committed transaction. Event delivery is
// best effort: the ledger state is already durable.
func (s *service) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event.New(eventType, payload)); err != nil {
		logger.FromContext(ctx).Warn("Event publish failed", "type", eventType, "error", err)
	}
}
