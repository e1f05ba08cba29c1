package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Stock       int     `json:"stock" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gt=0"`
}

// conjunction of optional list predicates
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
}

type ProductSort struct {
	Field string
	Desc  bool
}
