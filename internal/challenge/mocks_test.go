package challenge

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProgress(ctx context.Context, userID, challengeID string) (*domain.ChallengeProgress, error) {
	args := m.Called(ctx, userID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChallengeProgress), args.Error(1)
}

func (m *MockRepository) ListProgress(ctx context.Context, userID string, challengeIDs []string) ([]domain.ChallengeProgress, error) {
	args := m.Called(ctx, userID, challengeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChallengeProgress), args.Error(1)
}

func (m *MockRepository) UpsertProgress(ctx context.Context, p domain.ChallengeProgress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.ChallengeTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ChallengeTx), args.Error(1)
}

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetProgressForUpdate(ctx context.Context, userID, challengeID string) (*domain.ChallengeProgress, error) {
	args := m.Called(ctx, userID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChallengeProgress), args.Error(1)
}

func (m *MockTx) UpsertProgress(ctx context.Context, p domain.ChallengeProgress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTx) CreditWallet(ctx context.Context, userID string, amount int) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}
