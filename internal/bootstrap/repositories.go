package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surgearcade/portal/internal/database/postgres"
	"github.com/surgearcade/portal/internal/eventlog"
	"github.com/surgearcade/portal/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Shop      repository.Shop
	Wallet    repository.Wallet
	Profile   repository.Profile
	Challenge repository.Challenge
	Games     repository.Games
	EventLog  eventlog.Repository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Shop:      postgres.NewShopRepository(dbPool),
		Wallet:    postgres.NewWalletRepository(dbPool),
		Profile:   postgres.NewProfileRepository(dbPool),
		Challenge: postgres.NewChallengeRepository(dbPool),
		Games:     postgres.NewGamesRepository(dbPool),
		EventLog:  postgres.NewEventLogRepository(dbPool),
	}
}
