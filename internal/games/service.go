package games

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/event"
	"github.com/surgearcade/portal/internal/logger"
	"github.com/surgearcade/portal/internal/metrics"
	"github.com/surgearcade/portal/internal/repository"
)

// Service tracks game library usage: favorites, play sessions and the
// per-game records they roll up into.
type Service interface {
	ListRecords(ctx context.Context, userID string) ([]domain.GameRecord, error)
	// ToggleFavorite flips the favorite flag and returns the new record.
	ToggleFavorite(ctx context.Context, userID, gameID string) (*domain.GameRecord, error)
	StartSession(ctx context.Context, userID, gameID string) (*domain.GameSession, error)
	// EndSession finalizes the session and folds score and playtime into the
	// user's game record. Ending an already ended session is rejected.
	EndSession(ctx context.Context, userID, sessionID string, score int, completed bool) (*domain.GameSession, error)
}

type service struct {
	repo repository.Games
	bus  event.Bus
	now  func() time.Time
}

func NewService(repo repository.Games, bus event.Bus) Service {
	return &service{repo: repo, bus: bus, now: time.Now}
}

func (s *service) ListRecords(ctx context.Context, userID string) ([]domain.GameRecord, error) {
	return s.repo.ListRecords(ctx, userID)
}

func (s *service) ToggleFavorite(ctx context.Context, userID, gameID string) (*domain.GameRecord, error) {
	if gameID == "" {
		return nil, domain.ErrInvalidInput
	}

	rec, err := s.repo.GetRecord(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = &domain.GameRecord{UserID: userID, GameID: gameID}
	}
	rec.Favorite = !rec.Favorite

	if err := s.repo.UpsertRecord(ctx, *rec); err != nil {
		return nil, fmt.Errorf("failed to save game record: %w", err)
	}
	return rec, nil
}

func (s *service) StartSession(ctx context.Context, userID, gameID string) (*domain.GameSession, error) {
	if gameID == "" {
		return nil, domain.ErrInvalidInput
	}

	session := domain.GameSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		GameID:    gameID,
		StartedAt: s.now().UTC(),
	}
	created, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	logger.FromContext(ctx).Info("Game session started",
		"user_id", userID, "game_id", gameID, "session_id", created.ID)
	return created, nil
}

func (s *service) EndSession(ctx context.Context, userID, sessionID string, score int, completed bool) (*domain.GameSession, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := tx.GetSessionForUpdate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	if session.EndedAt != nil {
		return nil, domain.ErrSessionNotFound
	}

	endedAt := s.now().UTC()
	session.EndedAt = &endedAt
	session.Duration = int(endedAt.Sub(session.StartedAt).Minutes())
	if session.Duration < 0 {
		session.Duration = 0
	}
	session.Score = score
	session.Completed = completed
	if err := tx.UpdateSession(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to finalize session: %w", err)
	}

	rec, err := tx.GetRecordForUpdate(ctx, userID, session.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game record: %w", err)
	}
	if rec == nil {
		rec = &domain.GameRecord{UserID: userID, GameID: session.GameID}
	}
	rec.TimesPlayed++
	rec.TotalPlaytime += session.Duration
	rec.LastPlayedAt = &endedAt
	if score > rec.HighScore {
		rec.HighScore = score
	}
	if err := tx.UpsertRecord(ctx, *rec); err != nil {
		return nil, fmt.Errorf("failed to update game record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit session end: %w", err)
	}

	metrics.GameSessionsEnded.Inc()
	logger.FromContext(ctx).Info("Game session ended",
		"user_id", userID, "game_id", session.GameID, "session_id", sessionID,
		"score", score, "duration", session.Duration)

	if s.bus != nil {
		evt := event.New(domain.EventTypeGameSessionEnded, domain.GameSessionEndedPayload{
			UserID:    userID,
			GameID:    session.GameID,
			Score:     score,
			Completed: completed,
			Duration:  session.Duration,
		})
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn("Event publish failed", "type", domain.EventTypeGameSessionEnded, "error", err)
		}
	}

	return session, nil
}
