package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/middleware"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it. If
// it returns an error the response has already been written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequest,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// requireSession pulls the resolved session off the request context. If it
// returns nil the 401 has already been written.
func requireSession(r *http.Request, w http.ResponseWriter) *domain.Session {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		respondError(w, http.StatusUnauthorized, ErrMsgSignInRequired)
		return nil
	}
	return session
}
