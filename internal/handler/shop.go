package handler

import (
	"fmt"
	"net/http"

	"github.com/entroverse/entroverse-api/internal/economy"
	"github.com/entroverse/entroverse-api/internal/logger"
)

// BuyItemRequest represents the body for a shop purchase
type BuyItemRequest struct {
	ItemName string `json:"item_name" validate:"required"`
}

// HandleGetShop returns the purchasable item catalog
func HandleGetShop(service economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := service.GetShopItems(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get shop items", "error", err)
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}

// HandleBuyItem purchases a shop item for the authenticated user
func HandleBuyItem(service economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := requireSession(r, w)
		if session == nil {
			return
		}
		var req BuyItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
			return
		}

		item, err := service.BuyItem(r.Context(), session.UserID, req.ItemName)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{
			Message: fmt.Sprintf("Bought %s", item.Name),
			Data:    item,
		})
	}
}
