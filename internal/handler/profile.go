package handler

import (
	"net/http"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/profile"
)

// HandleGetProfile returns the user's profile, creating it with defaults on
// first sight.
func HandleGetProfile(profileSvc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		username := GetOptionalQueryParam(r, "username", userID)

		p, err := profileSvc.GetOrCreate(r.Context(), userID, username)
		if err != nil {
			respondServiceError(w, r, "Get profile", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}

// UpdateProfileRequest carries the editable profile fields. Omitted fields
// are left unchanged.
type UpdateProfileRequest struct {
	UserID      string  `json:"user_id" validate:"required,max=64"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=40"`
	Status      *string `json:"status,omitempty" validate:"omitempty,max=120"`
}

// HandleUpdateProfile applies a partial profile update.
func HandleUpdateProfile(profileSvc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateProfileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update profile"); err != nil {
			return
		}

		p, err := profileSvc.Update(r.Context(), req.UserID, profile.ProfileUpdate{
			DisplayName: req.DisplayName,
			Status:      req.Status,
		})
		if err != nil {
			respondServiceError(w, r, "Update profile", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}

// HandleGetSettings returns the user's settings, falling back to defaults
// when none are stored.
func HandleGetSettings(profileSvc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		settings, err := profileSvc.GetSettings(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get settings", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: settings})
	}
}

// UpdateSettingsRequest replaces the user's settings as a whole record.
type UpdateSettingsRequest struct {
	Settings domain.Settings `json:"settings"`
}

// HandleUpdateSettings stores the full settings record.
func HandleUpdateSettings(profileSvc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateSettingsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update settings"); err != nil {
			return
		}

		settings, err := profileSvc.UpdateSettings(r.Context(), req.Settings)
		if err != nil {
			respondServiceError(w, r, "Update settings", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: settings})
	}
}
