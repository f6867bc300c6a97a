package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/surgearcade/portal/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// testPool holds exactly as many templates as the daily count, so the set
// membership is known even though pick order is not.
func testPool() *Pool {
	return &Pool{Templates: []domain.ChallengeTemplate{
		{Key: "play", Title: "Play", Type: domain.ChallengeDaily, Goal: domain.GoalPlayGames, Target: 3, Reward: 50, Difficulty: "easy"},
		{Key: "buy", Title: "Buy", Type: domain.ChallengeDaily, Goal: domain.GoalBuyItems, Target: 2, Reward: 40, Difficulty: "easy"},
		{Key: "score", Title: "Score", Type: domain.ChallengeDaily, Goal: domain.GoalHighScore, Target: 100, Reward: 80, Difficulty: "medium"},
	}}
}

func newTestService(repo *MockRepository) *service {
	svc := NewService(testPool(), repo, nil, 3).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func findByGoal(t *testing.T, svc *service, goal domain.ChallengeGoal) domain.Challenge {
	t.Helper()
	for _, c := range svc.today() {
		if c.Goal == goal {
			return c
		}
	}
	t.Fatalf("no challenge with goal %s in today's set", goal)
	return domain.Challenge{}
}

func TestListForUser_MergesProgress(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	play := findByGoal(t, svc, domain.GoalPlayGames)
	repo.On("ListProgress", mock.Anything, "user-1", mock.Anything).
		Return([]domain.ChallengeProgress{
			{UserID: "user-1", ChallengeID: play.ID, Progress: 2},
		}, nil)

	out, err := svc.ListForUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, out, 3)

	for _, uc := range out {
		if uc.ID == play.ID {
			assert.Equal(t, 2, uc.Progress)
		} else {
			assert.Equal(t, 0, uc.Progress)
		}
		assert.False(t, uc.Claimed)
	}
}

func TestRecordProgress_AccumulatesAndClamps(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	play := findByGoal(t, svc, domain.GoalPlayGames)
	repo.On("GetProgress", mock.Anything, "user-1", play.ID).
		Return(&domain.ChallengeProgress{UserID: "user-1", ChallengeID: play.ID, Progress: 2}, nil)
	// Other goals have no matching challenge update for this call.
	repo.On("UpsertProgress", mock.Anything, mock.MatchedBy(func(p domain.ChallengeProgress) bool {
		return p.ChallengeID == play.ID && p.Progress == 3 && p.Completed && p.CompletedAt != nil
	})).Return(nil)

	// 2 + 5 overshoots the target of 3; progress clamps and completes.
	err := svc.RecordProgress(context.Background(), "user-1", domain.GoalPlayGames, 5)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordProgress_HighScoreKeepsBest(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	score := findByGoal(t, svc, domain.GoalHighScore)
	repo.On("GetProgress", mock.Anything, "user-1", score.ID).
		Return(&domain.ChallengeProgress{UserID: "user-1", ChallengeID: score.ID, Progress: 80}, nil)

	// A lower score than the current best writes nothing.
	err := svc.RecordProgress(context.Background(), "user-1", domain.GoalHighScore, 50)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpsertProgress")
}

func TestRecordProgress_CompletedChallengeUntouched(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	play := findByGoal(t, svc, domain.GoalPlayGames)
	repo.On("GetProgress", mock.Anything, "user-1", play.ID).
		Return(&domain.ChallengeProgress{UserID: "user-1", ChallengeID: play.ID, Progress: 3, Completed: true}, nil)

	err := svc.RecordProgress(context.Background(), "user-1", domain.GoalPlayGames, 1)
	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpsertProgress")
}

func TestRecordProgress_IgnoresNonPositiveAmount(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	require.NoError(t, svc.RecordProgress(context.Background(), "user-1", domain.GoalPlayGames, 0))
	repo.AssertNotCalled(t, "GetProgress")
}

func TestClaimReward(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	svc := newTestService(repo)

	buy := findByGoal(t, svc, domain.GoalBuyItems)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetProgressForUpdate", mock.Anything, "user-1", buy.ID).
		Return(&domain.ChallengeProgress{UserID: "user-1", ChallengeID: buy.ID, Progress: 2, Completed: true}, nil)
	tx.On("UpsertProgress", mock.Anything, mock.MatchedBy(func(p domain.ChallengeProgress) bool {
		return p.Claimed && p.ClaimedAt != nil
	})).Return(nil)
	tx.On("CreditWallet", mock.Anything, "user-1", buy.Reward).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	res, err := svc.ClaimReward(context.Background(), "user-1", buy.ID)
	require.NoError(t, err)
	assert.Equal(t, buy.Reward, res.Reward)
	tx.AssertExpectations(t)
}

func TestClaimReward_Incomplete(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	svc := newTestService(repo)

	buy := findByGoal(t, svc, domain.GoalBuyItems)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetProgressForUpdate", mock.Anything, "user-1", buy.ID).
		Return(&domain.ChallengeProgress{UserID: "user-1", ChallengeID: buy.ID, Progress: 1}, nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.ClaimReward(context.Background(), "user-1", buy.ID)
	assert.ErrorIs(t, err, domain.ErrChallengeIncomplete)
	tx.AssertNotCalled(t, "CreditWallet")
	tx.AssertNotCalled(t, "Commit")
}

func TestClaimReward_AlreadyClaimed(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	svc := newTestService(repo)

	buy := findByGoal(t, svc, domain.GoalBuyItems)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetProgressForUpdate", mock.Anything, "user-1", buy.ID).
		Return(&domain.ChallengeProgress{UserID: "user-1", ChallengeID: buy.ID, Progress: 2, Completed: true, Claimed: true}, nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	_, err := svc.ClaimReward(context.Background(), "user-1", buy.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	tx.AssertNotCalled(t, "CreditWallet")
}

func TestClaimReward_UnknownChallenge(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	_, err := svc.ClaimReward(context.Background(), "user-1", "20250615:nope")
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
	repo.AssertNotCalled(t, "BeginTx")
}

func findByGoalOnDay(t *testing.T, svc *service, day time.Time, goal domain.ChallengeGoal) domain.Challenge {
	t.Helper()
	for _, c := range svc.Daily(domain.NewDateKey(day)) {
		if c.Goal == goal {
			return c
		}
	}
	t.Fatalf("no challenge with goal %s on %s", goal, day.Format("2006-01-02"))
	return domain.Challenge{}
}

func TestClaimReward_AfterRollover(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	svc := newTestService(repo)

	// Completed just before midnight on the 14th, claimed the next day.
	buy := findByGoalOnDay(t, svc, testNow.AddDate(0, 0, -1), domain.GoalBuyItems)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("GetProgressForUpdate", mock.Anything, "user-1", buy.ID).
		Return(&domain.ChallengeProgress{UserID: "user-1", ChallengeID: buy.ID, Progress: 2, Completed: true}, nil)
	tx.On("UpsertProgress", mock.Anything, mock.MatchedBy(func(p domain.ChallengeProgress) bool {
		return p.Claimed
	})).Return(nil)
	tx.On("CreditWallet", mock.Anything, "user-1", buy.Reward).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	res, err := svc.ClaimReward(context.Background(), "user-1", buy.ID)
	require.NoError(t, err)
	assert.Equal(t, buy.Reward, res.Reward)
	tx.AssertExpectations(t)
}

func TestClaimReward_GraceExpired(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	old := findByGoalOnDay(t, svc, testNow.AddDate(0, 0, -2), domain.GoalBuyItems)

	_, err := svc.ClaimReward(context.Background(), "user-1", old.ID)
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
	repo.AssertNotCalled(t, "BeginTx")
}
