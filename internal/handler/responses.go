package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidRequest     = "Invalid request body"
	ErrMsgSignInRequired     = "Sign in to do that"

	ErrMsgProfileNotFoundError = "Profile not found"
	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgQuestNotFoundError   = "Quest not found"
	ErrMsgSetNotFoundError     = "Cosmetic set not found"

	ErrMsgNotEnoughEntrobucks  = "Not enough Entrobucks"
	ErrMsgAlreadyOwnedError    = "You already own that item"
	ErrMsgNotOwnedError        = "You don't own that item"
	ErrMsgNotEquippableError   = "That item can't be equipped"
	ErrMsgNotAModifierError    = "That item is not a modifier"
	ErrMsgQuestCompletedError  = "Quest is already completed"
	ErrMsgCompletionInFlight   = "That quest is already being completed"
	ErrMsgSetAlreadyClaimedErr = "Set bonus already claimed"
	ErrMsgSetIncompleteError   = "You don't own the full set yet"
)

// mapServiceError maps domain errors to HTTP status codes and messages the
// UI can show as-is.
func mapServiceError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, ErrMsgSignInRequired
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFoundError
	case errors.Is(err, domain.ErrSetNotFound):
		return http.StatusNotFound, ErrMsgSetNotFoundError
	case errors.Is(err, domain.ErrInsufficientEntrobucks):
		return http.StatusBadRequest, ErrMsgNotEnoughEntrobucks
	case errors.Is(err, domain.ErrAlreadyOwned):
		return http.StatusBadRequest, ErrMsgAlreadyOwnedError
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusBadRequest, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrNotEquippable):
		return http.StatusBadRequest, ErrMsgNotEquippableError
	case errors.Is(err, domain.ErrNotAModifier):
		return http.StatusBadRequest, ErrMsgNotAModifierError
	case errors.Is(err, domain.ErrQuestCompleted):
		return http.StatusConflict, ErrMsgQuestCompletedError
	case errors.Is(err, domain.ErrCompletionInFlight):
		return http.StatusConflict, ErrMsgCompletionInFlight
	case errors.Is(err, domain.ErrSetAlreadyClaimed):
		return http.StatusConflict, ErrMsgSetAlreadyClaimedErr
	case errors.Is(err, domain.ErrSetIncomplete):
		return http.StatusBadRequest, ErrMsgSetIncompleteError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequest
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps and sends a service error
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceError(err)
	respondError(w, status, message)
}
