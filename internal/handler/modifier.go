package handler

import (
	"net/http"
	"time"

	"github.com/entroverse/entroverse-api/internal/modifier"
)

// UseModifierRequest represents the body for activating a drop modifier
type UseModifierRequest struct {
	ItemName string `json:"item_name" validate:"required"`
}

// PongWinRequest represents the body for reporting a won pong round
type PongWinRequest struct {
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// UseModifierResponse carries the modifier expiry back to the UI
type UseModifierResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PongWinResponse reports whether the round produced a drop
type PongWinResponse struct {
	Dropped  bool   `json:"dropped"`
	ItemName string `json:"item_name,omitempty"`
}

// HandleUseModifier activates a drop-rate modifier
func HandleUseModifier(service modifier.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		var req UseModifierRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Use modifier"); err != nil {
			return
		}

		expiresAt, err := service.UseModifier(r.Context(), session.UserID, req.ItemName)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, UseModifierResponse{
			Message:   "Modifier activated",
			ExpiresAt: expiresAt,
		})
	}
}

// HandlePongWin records a won pong round and rolls for a trophy drop
func HandlePongWin(service modifier.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		var req PongWinRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Pong win"); err != nil {
			return
		}

		dropped, err := service.HandlePongWin(r.Context(), session.UserID, req.Difficulty)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		resp := PongWinResponse{Dropped: dropped != nil}
		if dropped != nil {
			resp.ItemName = dropped.Name
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
