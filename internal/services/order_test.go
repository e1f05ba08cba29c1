package service_test

import (
	"context"
	"database/sql"
	"testing"

	appErrors "shopapi/internal/errors"
	"shopapi/internal/models"
	"shopapi/internal/repositories/mocks"
	service "shopapi/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderService(t *testing.T) (service.OrderService, *mocks.OrderRepository, *mocks.CartRepository, *mocks.ProductRepository) {
	t.Helper()

	orderRepo := &mocks.OrderRepository{}
	cartRepo := &mocks.CartRepository{}
	productRepo := &mocks.ProductRepository{}

	return service.NewOrderService(orderRepo, cartRepo, productRepo), orderRepo, cartRepo, productRepo
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()

	t.Run("Success - Total Is Snapshot Of Current Prices", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, cartRepo, productRepo := newOrderService(t)
		productA := &models.Product{ID: uuid.New(), Name: "Keyboard", Price: 10.00}
		productB := &models.Product{ID: uuid.New(), Name: "Mouse", Price: 5.00}
		cart := &models.Cart{
			ID:     cartID,
			UserID: userID,
			Items: map[string]models.CartItem{
				productA.ID.String(): {ProductID: productA.ID, Quantity: 2},
				productB.ID.String(): {ProductID: productB.ID, Quantity: 3},
			},
		}
		cartRepo.On("GetCartByID", ctx, cartID).Return(cart, nil).Once()
		productRepo.On("GetProductsByIDs", ctx, mock.AnythingOfType("[]uuid.UUID")).
			Return(map[uuid.UUID]*models.Product{productA.ID: productA, productB.ID: productB}, nil).Once()
		orderRepo.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil).Once()

		req := &models.PlaceOrderRequest{
			UserID:          userID,
			CartID:          cartID,
			ShippingAddress: "221B Baker Street",
			PaymentMethod:   models.PaymentMethodCOD,
		}

		// Act
		order, err := orderService.PlaceOrder(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, 35.00, order.TotalAmount)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
		assert.Equal(t, cartID, order.CartID)
		assert.Equal(t, "221B Baker Street", order.ShippingAddress)
		// Placing an order leaves the source cart alone.
		cartRepo.AssertNotCalled(t, "UpdateCart", mock.Anything, mock.Anything)
		orderRepo.AssertExpectations(t)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, cartRepo, _ := newOrderService(t)
		cart := &models.Cart{ID: cartID, UserID: userID, Items: map[string]models.CartItem{}}
		cartRepo.On("GetCartByID", ctx, cartID).Return(cart, nil).Once()

		// Act
		order, err := orderService.PlaceOrder(ctx, &models.PlaceOrderRequest{UserID: userID, CartID: cartID, ShippingAddress: "x", PaymentMethod: models.PaymentMethodCOD})

		// Assert
		assert.Nil(t, order)
		appErr, ok := err.(*appErrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		assert.Equal(t, "Cannot place an order from an empty cart", appErr.Message)
		orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Cart Not Found", func(t *testing.T) {
		// Arrange
		orderService, _, cartRepo, _ := newOrderService(t)
		cartRepo.On("GetCartByID", ctx, cartID).Return(nil, sql.ErrNoRows).Once()

		// Act
		order, err := orderService.PlaceOrder(ctx, &models.PlaceOrderRequest{UserID: userID, CartID: cartID, ShippingAddress: "x", PaymentMethod: models.PaymentMethodCOD})

		// Assert
		assert.Nil(t, order)
		appErr, ok := err.(*appErrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Cart References Missing Product", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, cartRepo, productRepo := newOrderService(t)
		ghostID := uuid.New()
		cart := &models.Cart{
			ID:     cartID,
			UserID: userID,
			Items: map[string]models.CartItem{
				ghostID.String(): {ProductID: ghostID, Quantity: 1},
			},
		}
		cartRepo.On("GetCartByID", ctx, cartID).Return(cart, nil).Once()
		productRepo.On("GetProductsByIDs", ctx, mock.AnythingOfType("[]uuid.UUID")).
			Return(map[uuid.UUID]*models.Product{}, nil).Once()

		// Act
		order, err := orderService.PlaceOrder(ctx, &models.PlaceOrderRequest{UserID: userID, CartID: cartID, ShippingAddress: "x", PaymentMethod: models.PaymentMethodCOD})

		// Assert
		assert.Nil(t, order)
		appErr, ok := err.(*appErrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})
}

func TestGetOrderByID(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _, _ := newOrderService(t)
		order := &models.Order{ID: orderID, Status: models.OrderStatusShipped}
		orderRepo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		found, err := orderService.GetOrderByID(ctx, orderID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, order, found)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _, _ := newOrderService(t)
		orderRepo.On("GetOrderByID", ctx, orderID).Return(nil, sql.ErrNoRows).Once()

		// Act
		found, err := orderService.GetOrderByID(ctx, orderID)

		// Assert
		assert.Nil(t, found)
		appErr, ok := err.(*appErrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListOrdersByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _, _ := newOrderService(t)
		orders := []models.Order{{ID: uuid.New(), UserID: userID}, {ID: uuid.New(), UserID: userID}}
		orderRepo.On("ListOrdersByUser", ctx, userID).Return(orders, nil).Once()

		// Act
		found, err := orderService.ListOrdersByUser(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("Failure - No Orders", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _, _ := newOrderService(t)
		orderRepo.On("ListOrdersByUser", ctx, userID).Return([]models.Order{}, nil).Once()

		// Act
		found, err := orderService.ListOrdersByUser(ctx, userID)

		// Assert
		assert.Nil(t, found)
		appErr, ok := err.(*appErrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "No orders found", appErr.Message)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("Success - Any Enum Transition Accepted", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _, _ := newOrderService(t)
		// Delivered back to Pending is allowed, there is no transition table.
		updated := &models.Order{ID: orderID, Status: models.OrderStatusPending}
		orderRepo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusPending).Return(updated, nil).Once()

		// Act
		order, err := orderService.UpdateOrderStatus(ctx, orderID, models.OrderStatusPending)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, order.Status)
		orderRepo.AssertExpectations(t)
	})

	t.Run("Failure - Order Not Found", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _, _ := newOrderService(t)
		orderRepo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusCancelled).Return(nil, sql.ErrNoRows).Once()

		// Act
		order, err := orderService.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled)

		// Assert
		assert.Nil(t, order)
		appErr, ok := err.(*appErrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Order not found", appErr.Message)
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _, _ := newOrderService(t)
		updated := &models.Order{ID: orderID, PaymentStatus: models.PaymentStatusCompleted}
		orderRepo.On("UpdatePaymentStatus", ctx, orderID, models.PaymentStatusCompleted).Return(updated, nil).Once()

		// Act
		order, err := orderService.UpdatePaymentStatus(ctx, orderID, models.PaymentStatusCompleted)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)
	})

	t.Run("Failure - Order Not Found", func(t *testing.T) {
		// Arrange
		orderService, orderRepo, _, _ := newOrderService(t)
		orderRepo.On("UpdatePaymentStatus", ctx, orderID, models.PaymentStatusFailed).Return(nil, sql.ErrNoRows).Once()

		// Act
		order, err := orderService.UpdatePaymentStatus(ctx, orderID, models.PaymentStatusFailed)

		// Assert
		assert.Nil(t, order)
		appErr, ok := err.(*appErrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
