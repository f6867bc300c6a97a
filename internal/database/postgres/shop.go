package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/repository"
)

// ShopRepository implements the shop ledger repository for PostgreSQL
type ShopRepository struct {
	db *pgxpool.Pool
}

// NewShopRepository creates a new ShopRepository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

const entitlementColumns = `user_id, item_id, category, owned, equipped, purchased_at, purchase_price`

func scanEntitlement(row pgx.Row) (*domain.Entitlement, error) {
	var e domain.Entitlement
	err := row.Scan(&e.UserID, &e.ItemID, &e.Category, &e.Owned, &e.Equipped, &e.PurchasedAt, &e.PurchasePrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryError("failed to scan entitlement", err)
	}
	return &e, nil
}

func (r *ShopRepository) GetEntitlement(ctx context.Context, userID, itemID string) (*domain.Entitlement, error) {
	query := `SELECT ` + entitlementColumns + ` FROM entitlements WHERE user_id = $1 AND item_id = $2`
	return scanEntitlement(r.db.QueryRow(ctx, query, userID, itemID))
}

func (r *ShopRepository) ListEntitlements(ctx context.Context, userID string) ([]domain.Entitlement, error) {
	query := `SELECT ` + entitlementColumns + ` FROM entitlements WHERE user_id = $1 ORDER BY purchased_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, wrapQueryError("failed to list entitlements", err)
	}
	defer rows.Close()

	var out []domain.Entitlement
	for rows.Next() {
		var e domain.Entitlement
		if err := rows.Scan(&e.UserID, &e.ItemID, &e.Category, &e.Owned, &e.Equipped, &e.PurchasedAt, &e.PurchasePrice); err != nil {
			return nil, wrapQueryError("failed to scan entitlement", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ShopRepository) GetEquipped(ctx context.Context, userID string, category domain.Category) (*domain.Entitlement, error) {
	query := `SELECT ` + entitlementColumns + ` FROM entitlements WHERE user_id = $1 AND category = $2 AND equipped`
	return scanEntitlement(r.db.QueryRow(ctx, query, userID, category))
}

func (r *ShopRepository) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	var w domain.Wallet
	err := r.db.QueryRow(ctx, `SELECT user_id, balance FROM wallets WHERE user_id = $1`, userID).
		Scan(&w.UserID, &w.Balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryError("failed to get wallet", err)
	}
	return &w, nil
}

func (r *ShopRepository) BeginTx(ctx context.Context) (repository.ShopTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, wrapQueryError("failed to begin transaction", err)
	}
	return &shopTx{tx: tx}, nil
}

type shopTx struct {
	tx pgx.Tx
}

func (t *shopTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *shopTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *shopTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	var w domain.Wallet
	err := t.tx.QueryRow(ctx, `SELECT user_id, balance FROM wallets WHERE user_id = $1 FOR UPDATE`, userID).
		Scan(&w.UserID, &w.Balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryError("failed to lock wallet", err)
	}
	return &w, nil
}

func (t *shopTx) SetWalletBalance(ctx context.Context, userID string, balance int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE wallets SET balance = $1, updated_at = NOW() WHERE user_id = $2`, balance, userID)
	if err != nil {
		return wrapQueryError("failed to update wallet", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update wallet: no row for user %s", userID)
	}
	return nil
}

func (t *shopTx) GetEntitlement(ctx context.Context, userID, itemID string) (*domain.Entitlement, error) {
	query := `SELECT ` + entitlementColumns + ` FROM entitlements WHERE user_id = $1 AND item_id = $2 FOR UPDATE`
	return scanEntitlement(t.tx.QueryRow(ctx, query, userID, itemID))
}

func (t *shopTx) UpsertEntitlement(ctx context.Context, e domain.Entitlement) error {
	query := `
		INSERT INTO entitlements (user_id, item_id, category, owned, equipped, purchased_at, purchase_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, item_id) DO UPDATE
		SET owned = EXCLUDED.owned,
		    equipped = EXCLUDED.equipped,
		    purchased_at = EXCLUDED.purchased_at,
		    purchase_price = EXCLUDED.purchase_price
	`
	_, err := t.tx.Exec(ctx, query, e.UserID, e.ItemID, e.Category, e.Owned, e.Equipped, e.PurchasedAt, e.PurchasePrice)
	if err != nil {
		return wrapQueryError("failed to upsert entitlement", err)
	}
	return nil
}

func (t *shopTx) UnequipCategory(ctx context.Context, userID string, category domain.Category) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE entitlements SET equipped = FALSE WHERE user_id = $1 AND category = $2 AND equipped`,
		userID, category)
	if err != nil {
		return wrapQueryError("failed to unequip category", err)
	}
	return nil
}

func (t *shopTx) SetEquipped(ctx context.Context, userID, itemID string, equipped bool) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE entitlements SET equipped = $1 WHERE user_id = $2 AND item_id = $3 AND owned`,
		equipped, userID, itemID)
	if err != nil {
		return wrapQueryError("failed to set equipped", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to set equipped: no owned entitlement for %s/%s", userID, itemID)
	}
	return nil
}
