package domain

import "time"

// ChallengeType scopes how long a challenge stays active.
type ChallengeType string

const (
	ChallengeDaily   ChallengeType = "daily"
	ChallengeWeekly  ChallengeType = "weekly"
	ChallengeSpecial ChallengeType = "special"
)

// ChallengeGoal identifies which player activity advances a challenge.
type ChallengeGoal string

const (
	GoalPlayGames  ChallengeGoal = "play_games"
	GoalBuyItems   ChallengeGoal = "buy_items"
	GoalSpendCoins ChallengeGoal = "spend_coins"
	GoalEquipItems ChallengeGoal = "equip_items"
	GoalHighScore  ChallengeGoal = "high_score"
)

// ChallengeTemplate is a content-pack entry the daily set is drawn from.
type ChallengeTemplate struct {
	Key         string        `json:"key"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        ChallengeType `json:"type"`
	Goal        ChallengeGoal `json:"goal"`
	Target      int           `json:"target"`
	Reward      int           `json:"reward"`
	Difficulty  string        `json:"difficulty"`
}

// Challenge is an active challenge instance for one calendar day.
// ID is derived from the date key and template key so every caller sees the
// same set for a given day.
type Challenge struct {
	ID          string        `json:"id"`
	DateKey     DateKey       `json:"date_key"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        ChallengeType `json:"type"`
	Goal        ChallengeGoal `json:"goal"`
	Target      int           `json:"target"`
	Reward      int           `json:"reward"`
	Difficulty  string        `json:"difficulty"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// ChallengeProgress tracks one user's progress on one challenge.
// Progress is monotonic and clamped at the target; completion fires once.
type ChallengeProgress struct {
	UserID      string     `json:"user_id"`
	ChallengeID string     `json:"challenge_id"`
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Claimed     bool       `json:"claimed"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
}
