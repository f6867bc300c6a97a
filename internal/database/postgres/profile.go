package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surgearcade/portal/internal/domain"
)

// ProfileRepository implements profile and settings persistence for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `user_id, username, display_name, status, level, experience, games_played, total_playtime, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.UserID, &p.Username, &p.DisplayName, &p.Status, &p.Level,
		&p.Experience, &p.GamesPlayed, &p.TotalPlaytime, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryError("failed to scan profile", err)
	}
	return &p, nil
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(r.db.QueryRow(ctx, query, userID))
}

// CreateProfile inserts the profile and its starting wallet in one
// transaction. A concurrent create of the same user wins quietly; the
// existing row is returned.
func (r *ProfileRepository) CreateProfile(ctx context.Context, p domain.Profile, startingBalance int) (*domain.Profile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, wrapQueryError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err = tx.Exec(ctx, query, p.UserID, p.Username, p.DisplayName, p.Status, p.Level,
		p.Experience, p.GamesPlayed, p.TotalPlaytime, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, wrapQueryError("failed to insert profile", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO wallets (user_id, balance) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		p.UserID, startingBalance)
	if err != nil {
		return nil, wrapQueryError("failed to insert starting wallet", err)
	}

	created, err := scanProfile(tx.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, p.UserID))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, wrapQueryError("failed to commit profile create", err)
	}
	return created, nil
}

func (r *ProfileRepository) UpdateProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET display_name = $1, status = $2, level = $3, experience = $4,
		    games_played = $5, total_playtime = $6, updated_at = $7
		WHERE user_id = $8
		RETURNING ` + profileColumns
	return scanProfile(r.db.QueryRow(ctx, query, p.DisplayName, p.Status, p.Level,
		p.Experience, p.GamesPlayed, p.TotalPlaytime, p.UpdatedAt, p.UserID))
}

const settingsColumns = `user_id, push_enabled, new_games, achievements, daily_challenges,
	email_notifications, weekly_digest, promotions, profile_public, show_online_status,
	allow_friend_requests, auto_save, sound_enabled, music_enabled, graphics_quality,
	theme, color_scheme`

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	err := row.Scan(&s.UserID, &s.PushEnabled, &s.NewGames, &s.Achievements, &s.DailyChallenges,
		&s.EmailNotifications, &s.WeeklyDigest, &s.Promotions, &s.ProfilePublic, &s.ShowOnlineStatus,
		&s.AllowFriendRequests, &s.AutoSave, &s.SoundEnabled, &s.MusicEnabled, &s.GraphicsQuality,
		&s.Theme, &s.ColorScheme)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryError("failed to scan settings", err)
	}
	return &s, nil
}

func (r *ProfileRepository) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	query := `SELECT ` + settingsColumns + ` FROM user_settings WHERE user_id = $1`
	return scanSettings(r.db.QueryRow(ctx, query, userID))
}

func (r *ProfileRepository) UpsertSettings(ctx context.Context, s domain.Settings) (*domain.Settings, error) {
	query := `
		INSERT INTO user_settings (` + settingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE
		SET push_enabled = EXCLUDED.push_enabled,
		    new_games = EXCLUDED.new_games,
		    achievements = EXCLUDED.achievements,
		    daily_challenges = EXCLUDED.daily_challenges,
		    email_notifications = EXCLUDED.email_notifications,
		    weekly_digest = EXCLUDED.weekly_digest,
		    promotions = EXCLUDED.promotions,
		    profile_public = EXCLUDED.profile_public,
		    show_online_status = EXCLUDED.show_online_status,
		    allow_friend_requests = EXCLUDED.allow_friend_requests,
		    auto_save = EXCLUDED.auto_save,
		    sound_enabled = EXCLUDED.sound_enabled,
		    music_enabled = EXCLUDED.music_enabled,
		    graphics_quality = EXCLUDED.graphics_quality,
		    theme = EXCLUDED.theme,
		    color_scheme = EXCLUDED.color_scheme
		RETURNING ` + settingsColumns
	return scanSettings(r.db.QueryRow(ctx, query, s.UserID, s.PushEnabled, s.NewGames, s.Achievements,
		s.DailyChallenges, s.EmailNotifications, s.WeeklyDigest, s.Promotions, s.ProfilePublic,
		s.ShowOnlineStatus, s.AllowFriendRequests, s.AutoSave, s.SoundEnabled, s.MusicEnabled,
		s.GraphicsQuality, s.Theme, s.ColorScheme))
}
