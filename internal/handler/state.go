package handler

import (
	"errors"
	"net/http"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/middleware"
	"github.com/entroverse/entroverse-api/internal/state"
)

// HandleGetState returns the caller's full game state snapshot. Anonymous
// callers get the empty snapshot with authenticated=false, not an error.
func HandleGetState(engine state.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())

		snapshot, err := engine.LoadSnapshot(r.Context(), session)
		if err != nil {
			if errors.Is(err, domain.ErrNotAuthenticated) {
				respondJSON(w, http.StatusOK, snapshot)
				return
			}
			logger.FromContext(r.Context()).Error("Failed to load snapshot", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, snapshot)
	}
}
