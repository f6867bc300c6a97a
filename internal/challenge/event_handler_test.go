package challenge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/event"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Daily(key domain.DateKey) []domain.Challenge {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Challenge)
}

func (m *MockService) ListForUser(ctx context.Context, userID string) ([]UserChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]UserChallenge), args.Error(1)
}

func (m *MockService) RecordProgress(ctx context.Context, userID string, goal domain.ChallengeGoal, amount int) error {
	args := m.Called(ctx, userID, goal, amount)
	return args.Error(0)
}

func (m *MockService) ClaimReward(ctx context.Context, userID, challengeID string) (*ClaimResult, error) {
	args := m.Called(ctx, userID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClaimResult), args.Error(1)
}

func TestHandlers_PurchaseAdvancesBuyAndSpend(t *testing.T) {
	bus := event.NewMemoryBus()
	svc := new(MockService)
	RegisterHandlers(bus, svc)

	svc.On("RecordProgress", mock.Anything, "user-1", domain.GoalBuyItems, 1).Return(nil)
	svc.On("RecordProgress", mock.Anything, "user-1", domain.GoalSpendCoins, 150).Return(nil)

	err := bus.Publish(context.Background(), event.New(domain.EventTypeItemPurchased, domain.ItemPurchasedPayload{
		UserID: "user-1", ItemID: "avatar-neon-knight", Category: domain.CategoryAvatar, Price: 150,
	}))
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestHandlers_EquipAdvancesEquipGoal(t *testing.T) {
	bus := event.NewMemoryBus()
	svc := new(MockService)
	RegisterHandlers(bus, svc)

	svc.On("RecordProgress", mock.Anything, "user-1", domain.GoalEquipItems, 1).Return(nil)

	err := bus.Publish(context.Background(), event.New(domain.EventTypeItemEquipped, domain.ItemEquippedPayload{
		UserID: "user-1", ItemID: "theme-dark-neon", Category: domain.CategoryTheme,
	}))
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestHandlers_SessionEndAdvancesPlayAndScore(t *testing.T) {
	bus := event.NewMemoryBus()
	svc := new(MockService)
	RegisterHandlers(bus, svc)

	svc.On("RecordProgress", mock.Anything, "user-1", domain.GoalPlayGames, 1).Return(nil)
	svc.On("RecordProgress", mock.Anything, "user-1", domain.GoalHighScore, 4200).Return(nil)

	err := bus.Publish(context.Background(), event.New(domain.EventTypeGameSessionEnded, domain.GameSessionEndedPayload{
		UserID: "user-1", GameID: "surge-runner", Score: 4200, Completed: true,
	}))
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestHandlers_ZeroScoreSkipsHighScoreGoal(t *testing.T) {
	bus := event.NewMemoryBus()
	svc := new(MockService)
	RegisterHandlers(bus, svc)

	svc.On("RecordProgress", mock.Anything, "user-1", domain.GoalPlayGames, 1).Return(nil)

	err := bus.Publish(context.Background(), event.New(domain.EventTypeGameSessionEnded, domain.GameSessionEndedPayload{
		UserID: "user-1", GameID: "surge-runner", Score: 0,
	}))
	require.NoError(t, err)
	svc.AssertNotCalled(t, "RecordProgress", mock.Anything, "user-1", domain.GoalHighScore, mock.Anything)
}

func TestHandlers_WrongPayloadTypeErrors(t *testing.T) {
	bus := event.NewMemoryBus()
	svc := new(MockService)
	RegisterHandlers(bus, svc)

	err := bus.Publish(context.Background(), event.New(domain.EventTypeItemPurchased, "not-a-payload"))
	assert.Error(t, err)
}
