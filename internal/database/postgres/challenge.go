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

// ChallengeRepository implements challenge progress persistence for PostgreSQL
type ChallengeRepository struct {
	db *pgxpool.Pool
}

// NewChallengeRepository creates a new ChallengeRepository
func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

const progressColumns = `user_id, challenge_id, progress, completed, completed_at, claimed, claimed_at`

func scanProgress(row pgx.Row) (*domain.ChallengeProgress, error) {
	var p domain.ChallengeProgress
	err := row.Scan(&p.UserID, &p.ChallengeID, &p.Progress, &p.Completed, &p.CompletedAt, &p.Claimed, &p.ClaimedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryError("failed to scan challenge progress", err)
	}
	return &p, nil
}

const upsertProgressQuery = `
	INSERT INTO challenge_progress (` + progressColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (user_id, challenge_id) DO UPDATE
	SET progress = EXCLUDED.progress,
	    completed = EXCLUDED.completed,
	    completed_at = EXCLUDED.completed_at,
	    claimed = EXCLUDED.claimed,
	    claimed_at = EXCLUDED.claimed_at
`

func (r *ChallengeRepository) GetProgress(ctx context.Context, userID, challengeID string) (*domain.ChallengeProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM challenge_progress WHERE user_id = $1 AND challenge_id = $2`
	return scanProgress(r.db.QueryRow(ctx, query, userID, challengeID))
}

func (r *ChallengeRepository) ListProgress(ctx context.Context, userID string, challengeIDs []string) ([]domain.ChallengeProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM challenge_progress WHERE user_id = $1 AND challenge_id = ANY($2)`
	rows, err := r.db.Query(ctx, query, userID, challengeIDs)
	if err != nil {
		return nil, wrapQueryError("failed to list challenge progress", err)
	}
	defer rows.Close()

	var out []domain.ChallengeProgress
	for rows.Next() {
		var p domain.ChallengeProgress
		if err := rows.Scan(&p.UserID, &p.ChallengeID, &p.Progress, &p.Completed, &p.CompletedAt, &p.Claimed, &p.ClaimedAt); err != nil {
			return nil, wrapQueryError("failed to scan challenge progress", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ChallengeRepository) UpsertProgress(ctx context.Context, p domain.ChallengeProgress) error {
	_, err := r.db.Exec(ctx, upsertProgressQuery,
		p.UserID, p.ChallengeID, p.Progress, p.Completed, p.CompletedAt, p.Claimed, p.ClaimedAt)
	if err != nil {
		return wrapQueryError("failed to upsert challenge progress", err)
	}
	return nil
}

func (r *ChallengeRepository) BeginTx(ctx context.Context) (repository.ChallengeTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, wrapQueryError("failed to begin transaction", err)
	}
	return &challengeTx{tx: tx}, nil
}

type challengeTx struct {
	tx pgx.Tx
}

func (t *challengeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *challengeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *challengeTx) GetProgressForUpdate(ctx context.Context, userID, challengeID string) (*domain.ChallengeProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM challenge_progress WHERE user_id = $1 AND challenge_id = $2 FOR UPDATE`
	return scanProgress(t.tx.QueryRow(ctx, query, userID, challengeID))
}

func (t *challengeTx) UpsertProgress(ctx context.Context, p domain.ChallengeProgress) error {
	_, err := t.tx.Exec(ctx, upsertProgressQuery,
		p.UserID, p.ChallengeID, p.Progress, p.Completed, p.CompletedAt, p.Claimed, p.ClaimedAt)
	if err != nil {
		return wrapQueryError("failed to upsert challenge progress", err)
	}
	return nil
}

func (t *challengeTx) CreditWallet(ctx context.Context, userID string, amount int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE wallets SET balance = balance + $1, updated_at = NOW() WHERE user_id = $2`, amount, userID)
	if err != nil {
		return wrapQueryError("failed to credit wallet", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to credit wallet: no row for user %s", userID)
	}
	return nil
}
