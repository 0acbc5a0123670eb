package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/entroverse/entroverse-api/internal/domain"
)

func TestHandleGetShop(t *testing.T) {
	mockService := new(MockEconomyService)
	mockService.On("GetShopItems", mock.Anything).Return([]domain.Item{
		{ID: "i1", Name: "Void Visor", Cost: 200, InShop: true},
	}, nil)

	handler := HandleGetShop(mockService)

	req := anonymousRequest(t, "GET", "/api/v1/shop", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Void Visor")
	mockService.AssertExpectations(t)
}

func TestHandleBuyItem(t *testing.T) {
	t.Run("purchase succeeds", func(t *testing.T) {
		mockService := new(MockEconomyService)
		mockService.On("BuyItem", mock.Anything, testUserID, "Void Visor").
			Return(&domain.Item{ID: "i1", Name: "Void Visor", Cost: 200}, nil)

		handler := HandleBuyItem(mockService)

		req := authedRequest(t, "POST", "/api/v1/shop/buy", BuyItemRequest{ItemName: "Void Visor"})
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Bought Void Visor")
		mockService.AssertExpectations(t)
	})

	t.Run("anonymous caller gets 401", func(t *testing.T) {
		mockService := new(MockEconomyService)

		handler := HandleBuyItem(mockService)

		req := anonymousRequest(t, "POST", "/api/v1/shop/buy", BuyItemRequest{ItemName: "Void Visor"})
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "BuyItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insufficient balance maps to 400", func(t *testing.T) {
		mockService := new(MockEconomyService)
		mockService.On("BuyItem", mock.Anything, testUserID, "Void Visor").
			Return(nil, domain.ErrInsufficientEntrobucks)

		handler := HandleBuyItem(mockService)

		req := authedRequest(t, "POST", "/api/v1/shop/buy", BuyItemRequest{ItemName: "Void Visor"})
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEnoughEntrobucks)
	})

	t.Run("duplicate purchase maps to 400", func(t *testing.T) {
		mockService := new(MockEconomyService)
		mockService.On("BuyItem", mock.Anything, testUserID, "Void Visor").
			Return(nil, domain.ErrAlreadyOwned)

		handler := HandleBuyItem(mockService)

		req := authedRequest(t, "POST", "/api/v1/shop/buy", BuyItemRequest{ItemName: "Void Visor"})
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgAlreadyOwnedError)
	})

	t.Run("empty item name fails validation", func(t *testing.T) {
		mockService := new(MockEconomyService)

		handler := HandleBuyItem(mockService)

		req := authedRequest(t, "POST", "/api/v1/shop/buy", BuyItemRequest{})
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "BuyItem", mock.Anything, mock.Anything, mock.Anything)
	})
}
