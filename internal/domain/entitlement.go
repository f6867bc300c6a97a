package domain

import "time"

// Entitlement records a user's ownership and equip state for one catalog item.
// The (UserID, ItemID) pair is the composite key. Ownership is monotonic:
// once Owned is true there is no revocation path. Equipped implies Owned,
// and at most one entitlement per (user, category) can be equipped.
type Entitlement struct {
	UserID        string    `json:"user_id"`
	ItemID        string    `json:"item_id"`
	Category      Category  `json:"category"`
	Owned         bool      `json:"owned"`
	Equipped      bool      `json:"equipped"`
	PurchasedAt   time.Time `json:"purchased_at"`
	PurchasePrice int       `json:"purchase_price"`
}

// Wallet holds a user's coin balance. The balance is mutated only by
// purchase debits and reward credits and must never go negative.
type Wallet struct {
	UserID  string `json:"user_id"`
	Balance int    `json:"balance"`
}

// StartingBalance is granted to every newly created profile.
const StartingBalance = 1000
