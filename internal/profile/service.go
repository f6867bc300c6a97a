package profile

import (
	"context"
	"strings"
	"time"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/logger"
	"github.com/surgearcade/portal/internal/repository"
)

// Service manages portal profiles and per-user settings. Profiles are created
// lazily with defaults the first time a user is seen.
type Service interface {
	GetOrCreate(ctx context.Context, userID, username string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, update ProfileUpdate) (*domain.Profile, error)
	GetSettings(ctx context.Context, userID string) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, s domain.Settings) (*domain.Settings, error)
}

// ProfileUpdate carries the user-editable profile fields. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=40"`
	Status      *string `json:"status,omitempty" validate:"omitempty,max=120"`
}

type service struct {
	repo repository.Profile
	now  func() time.Time
}

func NewService(repo repository.Profile) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) GetOrCreate(ctx context.Context, userID, username string) (*domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	now := s.now().UTC()
	fresh := domain.Profile{
		UserID:      userID,
		Username:    username,
		DisplayName: username,
		Status:      domain.DefaultStatus,
		Level:       1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.repo.CreateProfile(ctx, fresh, domain.StartingBalance)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Profile created", "user_id", userID, "username", username)
	return created, nil
}

func (s *service) Update(ctx context.Context, userID string, update ProfileUpdate) (*domain.Profile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.DisplayName = name
	}
	if update.Status != nil {
		p.Status = strings.TrimSpace(*update.Status)
	}
	p.UpdatedAt = s.now().UTC()

	return s.repo.UpdateProfile(ctx, *p)
}

func (s *service) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := domain.DefaultSettings(userID)
		return &defaults, nil
	}
	return settings, nil
}

func (s *service) UpdateSettings(ctx context.Context, settings domain.Settings) (*domain.Settings, error) {
	if settings.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.UpsertSettings(ctx, settings)
}
