package domain

// Event type identifiers shared between publishers and subscribers.
const (
	EventTypeItemPurchased     = "shop.item_purchased"
	EventTypeItemEquipped      = "shop.item_equipped"
	EventTypeCoinsCredited     = "wallet.coins_credited"
	EventTypeRewardClaimed     = "challenge.reward_claimed"
	EventTypeGameSessionEnded  = "games.session_ended"
	EventTypeDailyRolloverDone = "rollover.completed"
)

// CoinsCreditedPayload is published after a wallet credit outside of shop
// purchases (rewards, grants).
type CoinsCreditedPayload struct {
	UserID     string `json:"user_id"`
	Amount     int    `json:"amount"`
	Reason     string `json:"reason"`
	NewBalance int    `json:"new_balance"`
}

// ItemPurchasedPayload is published after a successful purchase commit.
type ItemPurchasedPayload struct {
	UserID   string   `json:"user_id"`
	ItemID   string   `json:"item_id"`
	Category Category `json:"category"`
	Price    int      `json:"price"`
}

// ItemEquippedPayload is published after a successful equip commit.
type ItemEquippedPayload struct {
	UserID   string   `json:"user_id"`
	ItemID   string   `json:"item_id"`
	Category Category `json:"category"`
}

// RewardClaimedPayload is published after a challenge reward credit.
type RewardClaimedPayload struct {
	UserID      string `json:"user_id"`
	ChallengeID string `json:"challenge_id"`
	Reward      int    `json:"reward"`
}

// GameSessionEndedPayload is published when a play session is finalized.
type GameSessionEndedPayload struct {
	UserID    string `json:"user_id"`
	GameID    string `json:"game_id"`
	Score     int    `json:"score"`
	Completed bool   `json:"completed"`
	Duration  int    `json:"duration"`
}
