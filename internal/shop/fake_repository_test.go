package shop

import (
	"context"
	"sync"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/repository"
)

// fakeRepository is an in-memory repository.Shop used for scenario tests.
// Transactions take a repository-wide lock, mirroring the row-level
// serialization the real store provides.
type fakeRepository struct {
	mu           sync.Mutex
	wallets      map[string]int
	entitlements map[string]map[string]domain.Entitlement // userID -> itemID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		wallets:      make(map[string]int),
		entitlements: make(map[string]map[string]domain.Entitlement),
	}
}

func (f *fakeRepository) GetEntitlement(ctx context.Context, userID, itemID string) (*domain.Entitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getEntitlementLocked(userID, itemID), nil
}

func (f *fakeRepository) getEntitlementLocked(userID, itemID string) *domain.Entitlement {
	if ents, ok := f.entitlements[userID]; ok {
		if ent, ok := ents[itemID]; ok {
			c := ent
			return &c
		}
	}
	return nil
}

func (f *fakeRepository) ListEntitlements(ctx context.Context, userID string) ([]domain.Entitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Entitlement
	for _, ent := range f.entitlements[userID] {
		out = append(out, ent)
	}
	return out, nil
}

func (f *fakeRepository) GetEquipped(ctx context.Context, userID string, category domain.Category) (*domain.Entitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ent := range f.entitlements[userID] {
		if ent.Category == category && ent.Equipped {
			c := ent
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	balance, ok := f.wallets[userID]
	if !ok {
		return nil, nil
	}
	return &domain.Wallet{UserID: userID, Balance: balance}, nil
}

func (f *fakeRepository) BeginTx(ctx context.Context) (repository.ShopTx, error) {
	f.mu.Lock()
	return &fakeTx{repo: f}, nil
}

// fakeTx holds the repository lock until Commit or Rollback.
type fakeTx struct {
	repo *fakeRepository
	done bool
}

func (t *fakeTx) finish() {
	if !t.done {
		t.done = true
		t.repo.mu.Unlock()
	}
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.finish()
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.finish()
	return nil
}

func (t *fakeTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	balance, ok := t.repo.wallets[userID]
	if !ok {
		return nil, nil
	}
	return &domain.Wallet{UserID: userID, Balance: balance}, nil
}

func (t *fakeTx) SetWalletBalance(ctx context.Context, userID string, balance int) error {
	t.repo.wallets[userID] = balance
	return nil
}

func (t *fakeTx) GetEntitlement(ctx context.Context, userID, itemID string) (*domain.Entitlement, error) {
	return t.repo.getEntitlementLocked(userID, itemID), nil
}

func (t *fakeTx) UpsertEntitlement(ctx context.Context, ent domain.Entitlement) error {
	ents, ok := t.repo.entitlements[ent.UserID]
	if !ok {
		ents = make(map[string]domain.Entitlement)
		t.repo.entitlements[ent.UserID] = ents
	}
	ents[ent.ItemID] = ent
	return nil
}

func (t *fakeTx) UnequipCategory(ctx context.Context, userID string, category domain.Category) error {
	for id, ent := range t.repo.entitlements[userID] {
		if ent.Category == category && ent.Equipped {
			ent.Equipped = false
			t.repo.entitlements[userID][id] = ent
		}
	}
	return nil
}

func (t *fakeTx) SetEquipped(ctx context.Context, userID, itemID string, equipped bool) error {
	ent, ok := t.repo.entitlements[userID][itemID]
	if !ok {
		return domain.ErrNotOwned
	}
	ent.Equipped = equipped
	t.repo.entitlements[userID][itemID] = ent
	return nil
}
