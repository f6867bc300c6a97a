package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/surgearcade/portal/internal/challenge"
	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/testing/leaktest"
)

type stubRotationService struct {
	calls atomic.Int64
}

func (s *stubRotationService) Rotation(ctx context.Context, key domain.DateKey) domain.DailyRotation {
	s.calls.Add(1)
	return domain.DailyRotation{DateKey: key}
}

func (s *stubRotationService) Today(ctx context.Context) domain.DailyRotation {
	return s.Rotation(ctx, domain.NewDateKey(time.Now().UTC()))
}

func (s *stubRotationService) Catalog(ctx context.Context, key domain.DateKey) []domain.CatalogItem {
	return nil
}

func (s *stubRotationService) Item(ctx context.Context, key domain.DateKey, itemID string) (*domain.CatalogItem, error) {
	return nil, domain.ErrItemNotFound
}

type stubChallengeService struct {
	calls atomic.Int64
}

func (s *stubChallengeService) Daily(key domain.DateKey) []domain.Challenge {
	s.calls.Add(1)
	return nil
}

func (s *stubChallengeService) ListForUser(ctx context.Context, userID string) ([]challenge.UserChallenge, error) {
	return nil, nil
}

func (s *stubChallengeService) RecordProgress(ctx context.Context, userID string, goal domain.ChallengeGoal, amount int) error {
	return nil
}

func (s *stubChallengeService) ClaimReward(ctx context.Context, userID, challengeID string) (*challenge.ClaimResult, error) {
	return nil, nil
}

func TestTimeUntilNextRollover(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want func(d time.Duration) bool
	}{
		{
			name: "early morning is most of a day away",
			now:  time.Date(2026, 2, 2, 1, 0, 0, 0, time.UTC),
			want: func(d time.Duration) bool {
				return d > 22*time.Hour && d < 24*time.Hour
			},
		},
		{
			name: "just before midnight is minutes away",
			now:  time.Date(2026, 2, 2, 23, 59, 0, 0, time.UTC),
			want: func(d time.Duration) bool {
				return d > 0 && d < 2*time.Minute
			},
		},
		{
			name: "exactly midnight is a full day away",
			now:  time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
			want: func(d time.Duration) bool {
				return d == 24*time.Hour
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewRolloverWorker(&stubRotationService{}, &stubChallengeService{}, nil)
			w.now = func() time.Time { return tt.now }

			d := w.timeUntilNextRollover()
			assert.Greater(t, d, time.Duration(0))
			assert.LessOrEqual(t, d, 24*time.Hour)
			assert.True(t, tt.want(d))
		})
	}
}

func TestRolloverWorkerStartWarmsToday(t *testing.T) {
	rotSvc := &stubRotationService{}
	chalSvc := &stubChallengeService{}

	worker := NewRolloverWorker(rotSvc, chalSvc, nil)
	worker.Start()

	assert.Equal(t, int64(1), rotSvc.calls.Load())
	assert.Equal(t, int64(1), chalSvc.calls.Load())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, worker.Shutdown(ctx))
}

func TestRolloverWorkerShutdown(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	worker := NewRolloverWorker(&stubRotationService{}, &stubChallengeService{}, nil)
	worker.Start()

	// Allow time for any scheduled timers
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, worker.Shutdown(ctx))

	checker.Check(1)
}

func TestRolloverWorkerShutdownIdempotent(t *testing.T) {
	worker := NewRolloverWorker(&stubRotationService{}, &stubChallengeService{}, nil)
	worker.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, worker.Shutdown(ctx))
	assert.NoError(t, worker.Shutdown(ctx))
}
