package models

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart holds one line-item map per user, keyed by product ID.
type Cart struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Items     map[string]CartItem `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// CartLine is a line item joined with product name and price at read time.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

type CartView struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartLine `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type AddCartItemRequest struct {
	UserID    uuid.UUID `json:"userId" validate:"required"`
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
