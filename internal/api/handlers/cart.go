package handlers

import (
	"log/slog"
	"net/http"

	"shopapi/internal/api/middleware"
	"shopapi/internal/models"
	service "shopapi/internal/services"
	"shopapi/internal/utils"
	"shopapi/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.String("userId", req.UserID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Product added to cart successfully", cart)
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parsePathUUID(w, r, "userId")
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), userID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := parsePathUUID(w, r, "userId")
		if !ok {
			return
		}

		productID, ok := parsePathUUID(w, r, "productId")
		if !ok {
			return
		}

		var req models.UpdateCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateItem(r.Context(), userID, productID, req.Quantity)
		if err != nil {
			logger.Warn("Failed to update cart item", slog.String("userId", userID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Cart updated successfully", cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := parsePathUUID(w, r, "userId")
		if !ok {
			return
		}

		productID, ok := parsePathUUID(w, r, "productId")
		if !ok {
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), userID, productID)
		if err != nil {
			logger.Warn("Failed to remove cart item", slog.String("userId", userID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Product removed from cart successfully", cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := parsePathUUID(w, r, "userId")
		if !ok {
			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), userID)
		if err != nil {
			logger.Warn("Failed to clear cart", slog.String("userId", userID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Cart cleared successfully", cart)
	}
}
