package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopapi/internal/api/handlers"
	appErrors "shopapi/internal/errors"
	"shopapi/internal/models"
	"shopapi/internal/services/mocks"
	"shopapi/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderHandler_PlaceOrder(t *testing.T) {
	userID := uuid.New()
	cartID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).PlaceOrder()

		placeReq := &models.PlaceOrderRequest{
			UserID:          userID,
			CartID:          cartID,
			ShippingAddress: "221B Baker Street",
			PaymentMethod:   models.PaymentMethodCreditCard,
		}
		order := &models.Order{ID: uuid.New(), UserID: userID, CartID: cartID, TotalAmount: 35.00, Status: models.OrderStatusPending}
		mockService.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(r *models.PlaceOrderRequest) bool {
			return r.CartID == cartID && r.PaymentMethod == models.PaymentMethodCreditCard
		})).Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/place", marshalBody(t, placeReq), userID, nil)
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Order placed successfully", resp.Message)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Payment Method", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).PlaceOrder()

		body := marshalBody(t, map[string]any{
			"userId":          userID,
			"cartId":          cartID,
			"shippingAddress": "221B Baker Street",
			"paymentMethod":   "Barter",
		})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/place", body, userID, nil)
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).PlaceOrder()

		mockService.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, appErrors.BadRequestError("Cannot place an order from an empty cart")).Once()

		body := marshalBody(t, &models.PlaceOrderRequest{UserID: userID, CartID: cartID, ShippingAddress: "x", PaymentMethod: models.PaymentMethodCOD})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/place", body, userID, nil)
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Cannot place an order from an empty cart", resp.Message)
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).ListOrders()

		orders := []models.Order{{ID: uuid.New(), UserID: userID}, {ID: uuid.New(), UserID: userID}}
		mockService.On("ListOrdersByUser", mock.Anything, userID).Return(orders, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/user/"+userID.String(),
			nil, userID, map[string]string{"userId": userID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)

		var got []models.Order
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Len(t, got, 2)
	})

	t.Run("Failure - No Orders", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).ListOrders()

		mockService.On("ListOrdersByUser", mock.Anything, userID).Return(nil, appErrors.NotFoundError("No orders found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/user/"+userID.String(),
			nil, userID, map[string]string{"userId": userID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).GetOrder()

		order := &models.Order{ID: orderID, UserID: userID, TotalAmount: 35.00}
		mockService.On("GetOrderByID", mock.Anything, orderID).Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(),
			nil, userID, map[string]string{"orderId": orderID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failure - Malformed ID", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).GetOrder()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/oops",
			nil, userID, map[string]string{"orderId": "oops"})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetOrderByID", mock.Anything, mock.Anything)
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).UpdateStatus()

		order := &models.Order{ID: orderID, Status: models.OrderStatusShipped}
		mockService.On("UpdateOrderStatus", mock.Anything, orderID, models.OrderStatusShipped).Return(order, nil).Once()

		body := marshalBody(t, &models.UpdateOrderStatusRequest{Status: models.OrderStatusShipped})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/orders/update/"+orderID.String(),
			body, userID, map[string]string{"orderId": orderID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Order status updated successfully", resp.Message)
	})

	t.Run("Failure - Value Outside Enum", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).UpdateStatus()

		body := marshalBody(t, map[string]string{"status": "Teleported"})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/orders/update/"+orderID.String(),
			body, userID, map[string]string{"orderId": orderID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderHandler_UpdatePaymentStatus(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).UpdatePaymentStatus()

		order := &models.Order{ID: orderID, PaymentStatus: models.PaymentStatusCompleted}
		mockService.On("UpdatePaymentStatus", mock.Anything, orderID, models.PaymentStatusCompleted).Return(order, nil).Once()

		body := marshalBody(t, &models.UpdatePaymentStatusRequest{PaymentStatus: models.PaymentStatusCompleted})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/orders/payment/"+orderID.String(),
			body, userID, map[string]string{"orderId": orderID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Payment status updated successfully", resp.Message)
	})

	t.Run("Failure - Order Not Found", func(t *testing.T) {
		// Arrange
		mockService := &mocks.OrderService{}
		handler := handlers.NewOrderHandler(mockService).UpdatePaymentStatus()

		mockService.On("UpdatePaymentStatus", mock.Anything, orderID, models.PaymentStatusFailed).
			Return(nil, appErrors.NotFoundError("Order not found")).Once()

		body := marshalBody(t, &models.UpdatePaymentStatusRequest{PaymentStatus: models.PaymentStatusFailed})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/orders/payment/"+orderID.String(),
			body, userID, map[string]string{"orderId": orderID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
