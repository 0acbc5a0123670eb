package handler

import (
	"fmt"
	"net/http"

	"github.com/entroverse/entroverse-api/internal/domain"
	"github.com/entroverse/entroverse-api/internal/logger"
	"github.com/entroverse/entroverse-api/internal/profile"
)

// EquipRequest represents the body for equipping a cosmetic
type EquipRequest struct {
	ItemName string `json:"item_name" validate:"required"`
}

// UnequipRequest represents the body for clearing a cosmetic slot
type UnequipRequest struct {
	Slot string `json:"slot" validate:"required,equipslot"`
}

// ClaimSetRequest represents the body for claiming a set bonus
type ClaimSetRequest struct {
	SetID string `json:"set_id" validate:"required,uuid"`
}

// ClaimSetResponse reports the XP paid out by the claim
type ClaimSetResponse struct {
	Message  string `json:"message"`
	RewardXP int    `json:"reward_xp"`
}

// HandleGetProfile returns the authenticated user's profile
func HandleGetProfile(service profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		p, err := service.GetProfile(r.Context(), session.UserID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get profile", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: p})
	}
}

// HandleEquip assigns an owned cosmetic to its slot
func HandleEquip(service profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		var req EquipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		slot, err := service.Equip(r.Context(), session.UserID, req.ItemName)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{
			Message: fmt.Sprintf("Equipped %s to %s", req.ItemName, slot),
		})
	}
}

// HandleUnequip clears a cosmetic slot
func HandleUnequip(service profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		var req UnequipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unequip slot"); err != nil {
			return
		}

		if err := service.Unequip(r.Context(), session.UserID, domain.EquipSlot(req.Slot)); err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Slot cleared"})
	}
}

// HandleClaimSet claims a cosmetic set's one-time XP bonus
func HandleClaimSet(service profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		var req ClaimSetRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim set"); err != nil {
			return
		}

		rewardXP, err := service.ClaimSet(r.Context(), session.UserID, req.SetID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, ClaimSetResponse{
			Message:  "Set bonus claimed",
			RewardXP: rewardXP,
		})
	}
}
