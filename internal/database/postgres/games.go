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

// GamesRepository implements game library usage persistence for PostgreSQL
type GamesRepository struct {
	db *pgxpool.Pool
}

// NewGamesRepository creates a new GamesRepository
func NewGamesRepository(db *pgxpool.Pool) *GamesRepository {
	return &GamesRepository{db: db}
}

const recordColumns = `user_id, game_id, favorite, times_played, total_playtime, high_score, last_played_at`

func scanRecord(row pgx.Row) (*domain.GameRecord, error) {
	var rec domain.GameRecord
	err := row.Scan(&rec.UserID, &rec.GameID, &rec.Favorite, &rec.TimesPlayed,
		&rec.TotalPlaytime, &rec.HighScore, &rec.LastPlayedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryError("failed to scan game record", err)
	}
	return &rec, nil
}

const sessionColumns = `session_id, user_id, game_id, started_at, ended_at, duration, score, completed`

func scanSession(row pgx.Row) (*domain.GameSession, error) {
	var s domain.GameSession
	err := row.Scan(&s.ID, &s.UserID, &s.GameID, &s.StartedAt, &s.EndedAt, &s.Duration, &s.Score, &s.Completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryError("failed to scan game session", err)
	}
	return &s, nil
}

const upsertRecordQuery = `
	INSERT INTO game_records (` + recordColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (user_id, game_id) DO UPDATE
	SET favorite = EXCLUDED.favorite,
	    times_played = EXCLUDED.times_played,
	    total_playtime = EXCLUDED.total_playtime,
	    high_score = EXCLUDED.high_score,
	    last_played_at = EXCLUDED.last_played_at
`

func (r *GamesRepository) GetRecord(ctx context.Context, userID, gameID string) (*domain.GameRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM game_records WHERE user_id = $1 AND game_id = $2`
	return scanRecord(r.db.QueryRow(ctx, query, userID, gameID))
}

func (r *GamesRepository) ListRecords(ctx context.Context, userID string) ([]domain.GameRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM game_records WHERE user_id = $1 ORDER BY game_id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, wrapQueryError("failed to list game records", err)
	}
	defer rows.Close()

	var out []domain.GameRecord
	for rows.Next() {
		var rec domain.GameRecord
		if err := rows.Scan(&rec.UserID, &rec.GameID, &rec.Favorite, &rec.TimesPlayed,
			&rec.TotalPlaytime, &rec.HighScore, &rec.LastPlayedAt); err != nil {
			return nil, wrapQueryError("failed to scan game record", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *GamesRepository) UpsertRecord(ctx context.Context, rec domain.GameRecord) error {
	_, err := r.db.Exec(ctx, upsertRecordQuery,
		rec.UserID, rec.GameID, rec.Favorite, rec.TimesPlayed, rec.TotalPlaytime, rec.HighScore, rec.LastPlayedAt)
	if err != nil {
		return wrapQueryError("failed to upsert game record", err)
	}
	return nil
}

func (r *GamesRepository) CreateSession(ctx context.Context, s domain.GameSession) (*domain.GameSession, error) {
	query := `
		INSERT INTO game_sessions (session_id, user_id, game_id, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + sessionColumns
	return scanSession(r.db.QueryRow(ctx, query, s.ID, s.UserID, s.GameID, s.StartedAt))
}

func (r *GamesRepository) GetSession(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM game_sessions WHERE session_id = $1`
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *GamesRepository) BeginTx(ctx context.Context) (repository.GamesTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, wrapQueryError("failed to begin transaction", err)
	}
	return &gamesTx{tx: tx}, nil
}

type gamesTx struct {
	tx pgx.Tx
}

func (t *gamesTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *gamesTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *gamesTx) GetSessionForUpdate(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM game_sessions WHERE session_id = $1 FOR UPDATE`
	return scanSession(t.tx.QueryRow(ctx, query, sessionID))
}

func (t *gamesTx) UpdateSession(ctx context.Context, s domain.GameSession) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE game_sessions SET ended_at = $1, duration = $2, score = $3, completed = $4 WHERE session_id = $5`,
		s.EndedAt, s.Duration, s.Score, s.Completed, s.ID)
	if err != nil {
		return wrapQueryError("failed to update game session", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update game session: no row for %s", s.ID)
	}
	return nil
}

func (t *gamesTx) GetRecordForUpdate(ctx context.Context, userID, gameID string) (*domain.GameRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM game_records WHERE user_id = $1 AND game_id = $2 FOR UPDATE`
	return scanRecord(t.tx.QueryRow(ctx, query, userID, gameID))
}

func (t *gamesTx) UpsertRecord(ctx context.Context, rec domain.GameRecord) error {
	_, err := t.tx.Exec(ctx, upsertRecordQuery,
		rec.UserID, rec.GameID, rec.Favorite, rec.TimesPlayed, rec.TotalPlaytime, rec.HighScore, rec.LastPlayedAt)
	if err != nil {
		return wrapQueryError("failed to upsert game record", err)
	}
	return nil
}
