package repository

import (
	"context"

	"github.com/surgearcade/portal/internal/domain"
)

// Games defines the interface for game library usage persistence
type Games interface {
	// GetRecord returns nil when the user has never touched the game.
	GetRecord(ctx context.Context, userID, gameID string) (*domain.GameRecord, error)
	ListRecords(ctx context.Context, userID string) ([]domain.GameRecord, error)
	UpsertRecord(ctx context.Context, rec domain.GameRecord) error
	CreateSession(ctx context.Context, s domain.GameSession) (*domain.GameSession, error)
	GetSession(ctx context.Context, sessionID string) (*domain.GameSession, error)
	BeginTx(ctx context.Context) (GamesTx, error)
}

// GamesTx finalizes a play session and folds its results into the user's
// game record as one unit.
type GamesTx interface {
	Tx
	GetSessionForUpdate(ctx context.Context, sessionID string) (*domain.GameSession, error)
	UpdateSession(ctx context.Context, s domain.GameSession) error
	GetRecordForUpdate(ctx context.Context, userID, gameID string) (*domain.GameRecord, error)
	UpsertRecord(ctx context.Context, rec domain.GameRecord) error
}
