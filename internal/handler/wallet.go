package handler

import (
	"net/http"

	"github.com/surgearcade/portal/internal/wallet"
)

// HandleGetWallet returns the user's coin balance.
func HandleGetWallet(walletSvc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		balance, err := walletSvc.GetBalance(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get wallet", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: balance})
	}
}

// CreditRequest grants coins to a user, outside of purchases.
type CreditRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Amount int    `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"max=100"`
}

// HandleCreditWallet adds coins to the user's balance.
func HandleCreditWallet(walletSvc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreditRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Credit wallet"); err != nil {
			return
		}

		updated, err := walletSvc.Credit(r.Context(), req.UserID, req.Amount, req.Reason)
		if err != nil {
			respondServiceError(w, r, "Credit wallet", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgWalletCredited,
			Data:    updated,
		})
	}
}
