package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/surgearcade/portal/internal/challenge"
	"github.com/surgearcade/portal/internal/domain"
)

type MockChallengeService struct {
	mock.Mock
}

func (m *MockChallengeService) Daily(key domain.DateKey) []domain.Challenge {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Challenge)
}

func (m *MockChallengeService) ListForUser(ctx context.Context, userID string) ([]challenge.UserChallenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]challenge.UserChallenge), args.Error(1)
}

func (m *MockChallengeService) RecordProgress(ctx context.Context, userID string, goal domain.ChallengeGoal, amount int) error {
	args := m.Called(ctx, userID, goal, amount)
	return args.Error(0)
}

func (m *MockChallengeService) ClaimReward(ctx context.Context, userID, challengeID string) (*challenge.ClaimResult, error) {
	args := m.Called(ctx, userID, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*challenge.ClaimResult), args.Error(1)
}

func TestHandleGetChallenges_Success(t *testing.T) {
	mockSvc := new(MockChallengeService)
	mockSvc.On("ListForUser", mock.Anything, "user-1").Return([]challenge.UserChallenge{
		{Challenge: domain.Challenge{ID: "20250615-play-3", Title: "Game Hopper"}, Progress: 1},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	HandleGetChallenges(mockSvc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Game Hopper")
	mockSvc.AssertExpectations(t)
}

func TestHandleGetChallenges_MissingUserID(t *testing.T) {
	mockSvc := new(MockChallengeService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/challenges", nil)
	rec := httptest.NewRecorder()
	HandleGetChallenges(mockSvc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "ListForUser")
}

func TestHandleRecordProgress_Success(t *testing.T) {
	InitValidator()
	mockSvc := new(MockChallengeService)
	mockSvc.On("RecordProgress", mock.Anything, "user-1", domain.GoalHighScore, 1).Return(nil)

	rec := postJSON(t, HandleRecordProgress(mockSvc), "/api/v1/challenges/progress", map[string]any{
		"user_id": "user-1",
		"goal":    "high_score",
		"amount":  1,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestHandleRecordProgress_UnknownGoal(t *testing.T) {
	InitValidator()
	mockSvc := new(MockChallengeService)

	rec := postJSON(t, HandleRecordProgress(mockSvc), "/api/v1/challenges/progress", map[string]any{
		"user_id": "user-1",
		"goal":    "win_lottery",
		"amount":  1,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockSvc.AssertNotCalled(t, "RecordProgress")
}

func TestHandleClaimReward_Success(t *testing.T) {
	InitValidator()
	mockSvc := new(MockChallengeService)
	mockSvc.On("ClaimReward", mock.Anything, "user-1", "20250615-play-3").
		Return(&challenge.ClaimResult{ChallengeID: "20250615-play-3", Reward: 50}, nil)

	rec := postJSON(t, HandleClaimReward(mockSvc), "/api/v1/challenges/claim", map[string]any{
		"user_id":      "user-1",
		"challenge_id": "20250615-play-3",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reward":50`)
	mockSvc.AssertExpectations(t)
}

func TestHandleClaimReward_Incomplete(t *testing.T) {
	InitValidator()
	mockSvc := new(MockChallengeService)
	mockSvc.On("ClaimReward", mock.Anything, "user-1", "20250615-play-3").
		Return(nil, domain.ErrChallengeIncomplete)

	rec := postJSON(t, HandleClaimReward(mockSvc), "/api/v1/challenges/claim", map[string]any{
		"user_id":      "user-1",
		"challenge_id": "20250615-play-3",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgChallengeIncomplete)
}
