package repository

import (
	"context"

	"github.com/surgearcade/portal/internal/domain"
)

// Challenge defines the interface for challenge progress persistence
type Challenge interface {
	// GetProgress returns nil when the user has no row for the challenge.
	GetProgress(ctx context.Context, userID, challengeID string) (*domain.ChallengeProgress, error)
	ListProgress(ctx context.Context, userID string, challengeIDs []string) ([]domain.ChallengeProgress, error)
	UpsertProgress(ctx context.Context, p domain.ChallengeProgress) error
	BeginTx(ctx context.Context) (ChallengeTx, error)
}

// ChallengeTx groups a reward claim into one transaction: marking the
// progress row claimed and crediting the wallet either both happen or
// neither does.
type ChallengeTx interface {
	Tx
	// GetProgressForUpdate reads the progress row with a row lock so
	// concurrent claims of the same reward serialize.
	GetProgressForUpdate(ctx context.Context, userID, challengeID string) (*domain.ChallengeProgress, error)
	UpsertProgress(ctx context.Context, p domain.ChallengeProgress) error
	CreditWallet(ctx context.Context, userID string, amount int) error
}
