package handler

import (
	"net/http"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/games"
)

// HandleGetGameRecords returns the user's per-game library records.
func HandleGetGameRecords(gamesSvc games.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		records, err := gamesSvc.ListRecords(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get game records", err)
			return
		}
		if records == nil {
			records = []domain.GameRecord{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: records})
	}
}

// ToggleFavoriteRequest flips the favorite flag on a game.
type ToggleFavoriteRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	GameID string `json:"game_id" validate:"required,max=100"`
}

// HandleToggleFavorite toggles whether a game is in the user's favorites.
func HandleToggleFavorite(gamesSvc games.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ToggleFavoriteRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Toggle favorite"); err != nil {
			return
		}

		rec, err := gamesSvc.ToggleFavorite(r.Context(), req.UserID, req.GameID)
		if err != nil {
			respondServiceError(w, r, "Toggle favorite", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: rec})
	}
}

// StartSessionRequest opens a play session.
type StartSessionRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	GameID string `json:"game_id" validate:"required,max=100"`
}

// HandleStartSession opens a play session and returns its id.
func HandleStartSession(gamesSvc games.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start session"); err != nil {
			return
		}

		session, err := gamesSvc.StartSession(r.Context(), req.UserID, req.GameID)
		if err != nil {
			respondServiceError(w, r, "Start session", err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Data: session})
	}
}

// EndSessionRequest finalizes a play session.
type EndSessionRequest struct {
	UserID    string `json:"user_id" validate:"required,max=64"`
	SessionID string `json:"session_id" validate:"required,max=64"`
	Score     int    `json:"score" validate:"gte=0"`
	Completed bool   `json:"completed"`
}

// HandleEndSession finalizes a session and folds it into the game record.
func HandleEndSession(gamesSvc games.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EndSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "End session"); err != nil {
			return
		}

		session, err := gamesSvc.EndSession(r.Context(), req.UserID, req.SessionID, req.Score, req.Completed)
		if err != nil {
			respondServiceError(w, r, "End session", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: session})
	}
}
