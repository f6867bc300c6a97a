package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/logger"
	"github.com/surgearcade/portal/internal/rotation"
	"github.com/surgearcade/portal/internal/shop"
)

// HandleGetRotation returns the daily shop rotation. An optional date query
// parameter (YYYY-MM-DD) selects a different day, defaulting to today.
func HandleGetRotation(rotationSvc rotation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateParam := GetOptionalQueryParam(r, "date", "")
		if dateParam == "" {
			respondJSON(w, http.StatusOK, rotationSvc.Today(r.Context()))
			return
		}

		day, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDateParam)
			return
		}
		respondJSON(w, http.StatusOK, rotationSvc.Rotation(r.Context(), domain.NewDateKey(day)))
	}
}

// HandleGetCatalog returns the full item universe for a day, not just the
// rotation subset. An optional date query parameter selects the day.
func HandleGetCatalog(rotationSvc rotation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := time.Now().UTC()
		if dateParam := GetOptionalQueryParam(r, "date", ""); dateParam != "" {
			parsed, err := time.Parse("2006-01-02", dateParam)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidDateParam)
				return
			}
			day = parsed
		}

		items := rotationSvc.Catalog(r.Context(), domain.NewDateKey(day))
		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}

// PurchaseRequest identifies the user and the rotation item being bought.
// The price always comes from the server-side catalog.
type PurchaseRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	ItemID string `json:"item_id" validate:"required,max=100"`
}

// HandlePurchase buys an item from today's rotation.
func HandlePurchase(shopSvc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase item"); err != nil {
			return
		}

		result, err := shopSvc.Purchase(r.Context(), req.UserID, req.ItemID)
		if err != nil {
			respondServiceError(w, r, "Purchase", err)
			return
		}

		logger.FromContext(r.Context()).Info("Item purchased",
			"user_id", req.UserID, "item_id", req.ItemID)
		respondJSON(w, http.StatusCreated, DataResponse{
			Message: MsgItemPurchasedSuccess,
			Data:    result,
		})
	}
}

// EquipRequest identifies the owned item to equip.
type EquipRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	ItemID string `json:"item_id" validate:"required,max=100"`
}

// HandleEquip equips an owned item, replacing whatever was equipped in its
// category.
func HandleEquip(shopSvc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EquipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		ent, err := shopSvc.Equip(r.Context(), req.UserID, req.ItemID)
		if err != nil {
			respondServiceError(w, r, "Equip", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgItemEquippedSuccess,
			Data:    ent,
		})
	}
}

// UnequipRequest clears the equipped slot for a category.
type UnequipRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64"`
	Category string `json:"category" validate:"required,category"`
}

// HandleUnequip clears the equipped item in a category. Unequipping an empty
// slot succeeds.
func HandleUnequip(shopSvc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UnequipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unequip item"); err != nil {
			return
		}

		category := domain.Category(strings.ToLower(req.Category))
		if err := shopSvc.Unequip(r.Context(), req.UserID, category); err != nil {
			respondServiceError(w, r, "Unequip", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemUnequipped})
	}
}

// HandleGetEntitlements returns everything the user owns, with equipped flags.
func HandleGetEntitlements(shopSvc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		ents, err := shopSvc.ListEntitlements(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get entitlements", err)
			return
		}
		if ents == nil {
			ents = []domain.Entitlement{}
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: ents})
	}
}

// EquippedResponse reports the equipped item for one category, nil when the
// slot is empty.
type EquippedResponse struct {
	Category domain.Category     `json:"category"`
	Equipped *domain.Entitlement `json:"equipped"`
}

// HandleGetEquipped returns the equipped item for a category.
func HandleGetEquipped(shopSvc shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		categoryParam, ok := GetQueryParam(r, w, "category")
		if !ok {
			return
		}

		category := domain.Category(strings.ToLower(categoryParam))
		ent, err := shopSvc.GetEquipped(r.Context(), userID, category)
		if err != nil {
			respondServiceError(w, r, "Get equipped", err)
			return
		}

		respondJSON(w, http.StatusOK, EquippedResponse{Category: category, Equipped: ent})
	}
}
