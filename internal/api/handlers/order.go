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

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

func (h *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.PlaceOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.PlaceOrder(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to place order", slog.String("userId", req.UserID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Order placed", slog.String("orderId", order.ID.String()))
		response.SuccessMessage(w, http.StatusCreated, "Order placed successfully", order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parsePathUUID(w, r, "userId")
		if !ok {
			return
		}

		orders, err := h.orderService.ListOrdersByUser(r.Context(), userID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, ok := parsePathUUID(w, r, "orderId")
		if !ok {
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), orderID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		orderID, ok := parsePathUUID(w, r, "orderId")
		if !ok {
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), orderID, req.Status)
		if err != nil {
			logger.Warn("Failed to update order status", slog.String("orderId", orderID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Order status updated successfully", order)
	}
}

func (h *OrderHandler) UpdatePaymentStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		orderID, ok := parsePathUUID(w, r, "orderId")
		if !ok {
			return
		}

		var req models.UpdatePaymentStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdatePaymentStatus(r.Context(), orderID, req.PaymentStatus)
		if err != nil {
			logger.Warn("Failed to update payment status", slog.String("orderId", orderID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Payment status updated successfully", order)
	}
}
