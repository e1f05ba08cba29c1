package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

type PaymentStatus string

type PaymentMethod string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"

	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"

	PaymentMethodCreditCard PaymentMethod = "Credit Card"
	PaymentMethodDebitCard  PaymentMethod = "Debit Card"
	PaymentMethodPayPal     PaymentMethod = "PayPal"
	PaymentMethodCOD        PaymentMethod = "COD"
)

// Order snapshots a cart at placement time. TotalAmount is computed once and
// never re-derived from later cart changes.
type Order struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	CartID          uuid.UUID     `json:"cart_id"`
	TotalAmount     float64       `json:"total_amount"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type PlaceOrderRequest struct {
	UserID          uuid.UUID     `json:"userId" validate:"required"`
	CartID          uuid.UUID     `json:"cartId" validate:"required"`
	ShippingAddress string        `json:"shippingAddress" validate:"required"`
	PaymentMethod   PaymentMethod `json:"paymentMethod" validate:"required,oneof='Credit Card' 'Debit Card' PayPal COD"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=Pending Shipped Delivered Cancelled"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"required,oneof=Pending Completed Failed"`
}
