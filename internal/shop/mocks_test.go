package shop

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/repository"
)

// MockRepository implements repository.Shop for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetEntitlement(ctx context.Context, userID, itemID string) (*domain.Entitlement, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entitlement), args.Error(1)
}

func (m *MockRepository) ListEntitlements(ctx context.Context, userID string) ([]domain.Entitlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entitlement), args.Error(1)
}

func (m *MockRepository) GetEquipped(ctx context.Context, userID string, category domain.Category) (*domain.Entitlement, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entitlement), args.Error(1)
}

func (m *MockRepository) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.ShopTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ShopTx), args.Error(1)
}

// MockTx implements repository.ShopTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockTx) SetWalletBalance(ctx context.Context, userID string, balance int) error {
	args := m.Called(ctx, userID, balance)
	return args.Error(0)
}

func (m *MockTx) GetEntitlement(ctx context.Context, userID, itemID string) (*domain.Entitlement, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entitlement), args.Error(1)
}

func (m *MockTx) UpsertEntitlement(ctx context.Context, ent domain.Entitlement) error {
	args := m.Called(ctx, ent)
	return args.Error(0)
}

func (m *MockTx) UnequipCategory(ctx context.Context, userID string, category domain.Category) error {
	args := m.Called(ctx, userID, category)
	return args.Error(0)
}

func (m *MockTx) SetEquipped(ctx context.Context, userID, itemID string, equipped bool) error {
	args := m.Called(ctx, userID, itemID, equipped)
	return args.Error(0)
}

// fixedCatalog implements rotation.Service over a static item list.
type fixedCatalog struct {
	items []domain.CatalogItem
}

func (f *fixedCatalog) Rotation(ctx context.Context, key domain.DateKey) domain.DailyRotation {
	return domain.DailyRotation{DateKey: key, Items: f.items}
}

func (f *fixedCatalog) Today(ctx context.Context) domain.DailyRotation {
	return domain.DailyRotation{Items: f.items}
}

func (f *fixedCatalog) Catalog(ctx context.Context, key domain.DateKey) []domain.CatalogItem {
	return f.items
}

func (f *fixedCatalog) Item(ctx context.Context, key domain.DateKey, itemID string) (*domain.CatalogItem, error) {
	for _, item := range f.items {
		if item.ID == itemID {
			return &item, nil
		}
	}
	return nil, domain.ErrItemNotFound
}
