package repository

import (
	"context"

	"github.com/surgearcade/portal/internal/domain"
)

// Profile defines the interface for profile and settings persistence
type Profile interface {
	// GetProfile returns nil when the user has no profile yet.
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	// CreateProfile inserts a new profile and its starting wallet in one
	// transaction. It is a no-op if the profile already exists.
	CreateProfile(ctx context.Context, p domain.Profile, startingBalance int) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error)

	// GetSettings returns nil when the user has no settings row yet.
	GetSettings(ctx context.Context, userID string) (*domain.Settings, error)
	UpsertSettings(ctx context.Context, s domain.Settings) (*domain.Settings, error)
}
