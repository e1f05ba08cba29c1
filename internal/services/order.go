package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "shopapi/internal/errors"
	"shopapi/internal/models"
	repository "shopapi/internal/repositories"
	"shopapi/internal/utils"

	"github.com/google/uuid"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{orderRepo: orderRepo, cartRepo: cartRepo, productRepo: productRepo}
}

// PlaceOrder snapshots the cart into a new order. The total is computed once
// from current product prices; the source cart is left untouched.
func (s *orderService) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error) {
	cart, err := s.cartRepo.GetCartByID(ctx, req.CartID)
	if err != nil {
		return nil, appErrors.NotFoundError("Cart not found").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.BadRequestError("Cannot place an order from an empty cart")
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart products").WithError(err)
	}

	var totalAmount float64

	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, appErrors.NotFoundError("Product not found: " + item.ProductID.String())
		}

		totalAmount += product.Price * float64(item.Quantity)
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          req.UserID,
		CartID:          cart.ID,
		TotalAmount:     totalAmount,
		ShippingAddress: utils.SanitizeText(req.ShippingAddress),
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("Order not found").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if len(orders) == 0 {
		return nil, appErrors.NotFoundError("No orders found")
	}

	return orders, nil
}

// UpdateOrderStatus accepts any member of the status enum. No transition
// table is enforced.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orderRepo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	return order, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (*models.Order, error) {
	order, err := s.orderRepo.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update payment status").WithError(err)
	}

	return order, nil
}
