package handler

import (
	"net/http"
	"strconv"

	"github.com/entroverse/entroverse-api/internal/economy"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/repository"
)

// GrantEntrobucksRequest represents the body for an admin balance grant
type GrantEntrobucksRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Amount int    `json:"amount" validate:"required,min=1"`
	Reason string `json:"reason" validate:"required"`
}

// GrantEntrobucksResponse reports the balance after the grant
type GrantEntrobucksResponse struct {
	Message string `json:"message"`
	Balance int    `json:"balance"`
}

// HandleListLedger lists recent ledger entries for a user. The ledger is
// append-only from the engine's side; this is the read surface for audits.
func HandleListLedger(ledger repository.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, "user_id is required")
			return
		}
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				respondError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = parsed
		}

		entries, err := ledger.ListRecent(r.Context(), userID, limit)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list ledger", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}

// HandleGrantEntrobucks credits a user's balance out of band
func HandleGrantEntrobucks(service economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GrantEntrobucksRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant entrobucks"); err != nil {
			return
		}

		balance, err := service.AddEntrobucks(r.Context(), req.UserID, req.Amount, req.Reason)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, GrantEntrobucksResponse{
			Message: "Entrobucks granted",
			Balance: balance,
		})
	}
}
