package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/surgearcade/portal/internal/concurrency"
	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/event"
	"github.com/surgearcade/portal/internal/logger"
	"github.com/surgearcade/portal/internal/metrics"
	"github.com/surgearcade/portal/internal/repository"
)

// UserChallenge is a daily challenge joined with one user's progress.
type UserChallenge struct {
	domain.Challenge
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Claimed     bool       `json:"claimed"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
}

// ClaimResult reports a successful reward claim.
type ClaimResult struct {
	ChallengeID string `json:"challenge_id"`
	Reward      int    `json:"reward"`
}

// Service manages the daily challenge set and per-user progress.
type Service interface {
	// Daily returns the challenge set for the given day.
	Daily(key domain.DateKey) []domain.Challenge
	// ListForUser returns today's challenges with the user's progress merged in.
	ListForUser(ctx context.Context, userID string) ([]UserChallenge, error)
	// RecordProgress advances today's challenges matching the goal. Progress
	// is monotonic and clamps at the target.
	RecordProgress(ctx context.Context, userID string, goal domain.ChallengeGoal, amount int) error
	// ClaimReward credits the challenge reward to the user's wallet. The
	// challenge must be completed and not yet claimed.
	ClaimReward(ctx context.Context, userID, challengeID string) (*ClaimResult, error)
}

type service struct {
	pool  *Pool
	repo  repository.Challenge
	bus   event.Bus
	locks *concurrency.LockManager
	count int
	now   func() time.Time
}

func NewService(pool *Pool, repo repository.Challenge, bus event.Bus, count int) Service {
	return &service{
		pool:  pool,
		repo:  repo,
		bus:   bus,
		locks: concurrency.NewLockManager(),
		count: count,
		now:   time.Now,
	}
}

func (s *service) Daily(key domain.DateKey) []domain.Challenge {
	return PickDaily(s.pool, key, s.count)
}

func (s *service) today() []domain.Challenge {
	return s.Daily(domain.NewDateKey(s.now()))
}

// claimGrace keeps a challenge claimable after its day ends. Progress rows
// outlive the daily set, so the instance is rebuilt from the id's date key.
const claimGrace = 24 * time.Hour

// lookup resolves a challenge id against the set of its own day, not just
// today's, so rollover does not orphan completed challenges.
func (s *service) lookup(challengeID string) *domain.Challenge {
	key, ok := ParseChallengeID(challengeID)
	if !ok {
		return nil
	}
	for _, c := range s.Daily(key) {
		if c.ID == challengeID {
			return &c
		}
	}
	return nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]UserChallenge, error) {
	challenges := s.today()
	ids := make([]string, len(challenges))
	for i, c := range challenges {
		ids[i] = c.ID
	}

	rows, err := s.repo.ListProgress(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge progress: %w", err)
	}
	byID := make(map[string]domain.ChallengeProgress, len(rows))
	for _, row := range rows {
		byID[row.ChallengeID] = row
	}

	out := make([]UserChallenge, len(challenges))
	for i, c := range challenges {
		uc := UserChallenge{Challenge: c}
		if p, ok := byID[c.ID]; ok {
			uc.Progress = p.Progress
			uc.Completed = p.Completed
			uc.CompletedAt = p.CompletedAt
			uc.Claimed = p.Claimed
			uc.ClaimedAt = p.ClaimedAt
		}
		out[i] = uc
	}
	return out, nil
}

func (s *service) RecordProgress(ctx context.Context, userID string, goal domain.ChallengeGoal, amount int) error {
	if amount <= 0 {
		return nil
	}

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	log := logger.FromContext(ctx)
	for _, c := range s.today() {
		if c.Goal != goal {
			continue
		}
		current, err := s.repo.GetProgress(ctx, userID, c.ID)
		if err != nil {
			return fmt.Errorf("failed to load progress for %s: %w", c.ID, err)
		}
		p := domain.ChallengeProgress{UserID: userID, ChallengeID: c.ID}
		if current != nil {
			p = *current
		}
		if p.Completed {
			continue
		}

		// High-score goals track the best single run, everything else
		// accumulates.
		if goal == domain.GoalHighScore {
			if amount <= p.Progress {
				continue
			}
			p.Progress = amount
		} else {
			p.Progress += amount
		}
		if p.Progress >= c.Target {
			p.Progress = c.Target
			p.Completed = true
			completedAt := s.now().UTC()
			p.CompletedAt = &completedAt
			log.Info("Challenge completed", "user_id", userID, "challenge_id", c.ID)
		}
		if err := s.repo.UpsertProgress(ctx, p); err != nil {
			return fmt.Errorf("failed to save progress for %s: %w", c.ID, err)
		}
	}
	return nil
}

func (s *service) ClaimReward(ctx context.Context, userID, challengeID string) (*ClaimResult, error) {
	challenge := s.lookup(challengeID)
	if challenge == nil {
		return nil, domain.ErrChallengeNotFound
	}
	// A completion just before midnight stays claimable for a grace period
	// after the daily set rolls over.
	if s.now().UTC().After(challenge.ExpiresAt.Add(claimGrace)) {
		return nil, domain.ErrChallengeNotFound
	}

	lock := s.locks.GetLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetProgressForUpdate(ctx, userID, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	if p == nil || !p.Completed {
		return nil, domain.ErrChallengeIncomplete
	}
	if p.Claimed {
		return nil, domain.ErrAlreadyClaimed
	}

	claimedAt := s.now().UTC()
	p.Claimed = true
	p.ClaimedAt = &claimedAt
	if err := tx.UpsertProgress(ctx, *p); err != nil {
		return nil, fmt.Errorf("failed to mark claim: %w", err)
	}
	if err := tx.CreditWallet(ctx, userID, challenge.Reward); err != nil {
		return nil, fmt.Errorf("failed to credit reward: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit claim: %w", err)
	}

	metrics.RewardsClaimed.Inc()
	metrics.CoinsAwarded.Add(float64(challenge.Reward))
	logger.FromContext(ctx).Info("Challenge reward claimed",
		"user_id", userID, "challenge_id", challengeID, "reward", challenge.Reward)

	if s.bus != nil {
		evt := event.New(domain.EventTypeRewardClaimed, domain.RewardClaimedPayload{
			UserID:      userID,
			ChallengeID: challengeID,
			Reward:      challenge.Reward,
		})
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn("Event publish failed", "type", domain.EventTypeRewardClaimed, "error", err)
		}
	}

	return &ClaimResult{ChallengeID: challengeID, Reward: challenge.Reward}, nil
}
