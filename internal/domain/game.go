package domain

import "time"

// GameRecord tracks one user's history with one game in the portal library.
type GameRecord struct {
	UserID        string     `json:"user_id"`
	GameID        string     `json:"game_id"`
	Favorite      bool       `json:"favorite"`
	TimesPlayed   int        `json:"times_played"`
	TotalPlaytime int        `json:"total_playtime"` // minutes
	HighScore     int        `json:"high_score"`
	LastPlayedAt  *time.Time `json:"last_played_at,omitempty"`
}

// GameSession is one play of a game, opened by StartSession and finalized
// by EndSession.
type GameSession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	GameID    string     `json:"game_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Duration  int        `json:"duration"` // minutes
	Score     int        `json:"score"`
	Completed bool       `json:"completed"`
}
