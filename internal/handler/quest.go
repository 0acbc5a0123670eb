package handler

import (
	"net/http"

	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/quest"
)

// StartQuestRequest represents the body for starting a quest
type StartQuestRequest struct {
	QuestID string `json:"quest_id" validate:"required,uuid"`
}

// IncrementQuestRequest represents the body for advancing quest progress.
// Quest accepts either a quest ID or a quest title.
type IncrementQuestRequest struct {
	Quest  string `json:"quest" validate:"required"`
	Amount int    `json:"amount" validate:"required,min=1"`
}

// CompleteQuestRequest represents the body for completing a quest
type CompleteQuestRequest struct {
	QuestID string `json:"quest_id" validate:"required,uuid"`
}

// HandleGetQuests returns the quest catalog
func HandleGetQuests(service quest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quests, err := service.GetQuests(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get quests", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: quests})
	}
}

// HandleStartQuest starts a quest for the authenticated user
func HandleStartQuest(service quest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		var req StartQuestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start quest"); err != nil {
			return
		}

		if err := service.StartQuest(r.Context(), session.UserID, req.QuestID); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Quest started"})
	}
}

// HandleIncrementQuest advances progress on an active quest
func HandleIncrementQuest(service quest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		var req IncrementQuestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Increment quest"); err != nil {
			return
		}

		if err := service.IncrementQuest(r.Context(), session.UserID, req.Quest, req.Amount); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Progress recorded"})
	}
}

// HandleCompleteQuest completes a quest and pays out its rewards
func HandleCompleteQuest(service quest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		var req CompleteQuestRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete quest"); err != nil {
			return
		}

		if err := service.CompleteQuest(r.Context(), session.UserID, req.QuestID); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Quest completed"})
	}
}
