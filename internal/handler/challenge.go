package handler

import (
	"net/http"

	"github.com/surgearcade/portal/internal/challenge"
	"github.com/surgearcade/portal/internal/domain"
)

// HandleGetChallenges returns today's challenges with the user's progress.
func HandleGetChallenges(challengeSvc challenge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		challenges, err := challengeSvc.ListForUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get challenges", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: challenges})
	}
}

// RecordProgressRequest reports player activity toward today's challenges.
type RecordProgressRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Goal   string `json:"goal" validate:"required,oneof=play_games buy_items spend_coins equip_items high_score"`
	Amount int    `json:"amount" validate:"required,gt=0"`
}

// HandleRecordProgress advances today's challenges matching the reported
// goal. Most progress arrives through domain events; this endpoint covers
// activity the games report directly, such as high scores.
func HandleRecordProgress(challengeSvc challenge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordProgressRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record progress"); err != nil {
			return
		}

		err := challengeSvc.RecordProgress(r.Context(), req.UserID, domain.ChallengeGoal(req.Goal), req.Amount)
		if err != nil {
			respondServiceError(w, r, "Record progress", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgProgressRecorded})
	}
}

// ClaimRewardRequest claims the reward of a completed challenge.
type ClaimRewardRequest struct {
	UserID      string `json:"user_id" validate:"required,max=64"`
	ChallengeID string `json:"challenge_id" validate:"required,max=100"`
}

// HandleClaimReward credits the reward of a completed challenge to the
// user's wallet.
func HandleClaimReward(challengeSvc challenge.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ClaimRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim reward"); err != nil {
			return
		}

		result, err := challengeSvc.ClaimReward(r.Context(), req.UserID, req.ChallengeID)
		if err != nil {
			respondServiceError(w, r, "Claim reward", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgRewardClaimed,
			Data:    result,
		})
	}
}
