package repository

import (
	"context"
	"database/sql"

	"shopapi/internal/models"
	"shopapi/internal/utils"

	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, cart_id, total_amount, shipping_address, payment_method, status, payment_status, created_at, updated_at`

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO orders (id, user_id, cart_id, total_amount, shipping_address, payment_method, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query,
		order.ID, order.UserID, order.CartID, order.TotalAmount,
		order.ShippingAddress, order.PaymentMethod, order.Status, order.PaymentStatus).
		Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order := &models.Order{}

	err := scanOrder(r.DB.QueryRowContext(dbCtx, query, id), order)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order

		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	return r.updateOrder(ctx, `status`, string(status), id)
}

func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (*models.Order, error) {
	return r.updateOrder(ctx, `payment_status`, string(status), id)
}

func (r *orderRepository) updateOrder(ctx context.Context, column, value string, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE orders SET ` + column + ` = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + orderColumns

	order := &models.Order{}

	err := scanOrder(r.DB.QueryRowContext(dbCtx, query, value, id), order)
	if err != nil {
		return nil, err
	}

	return order, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner, order *models.Order) error {
	return row.Scan(
		&order.ID, &order.UserID, &order.CartID, &order.TotalAmount,
		&order.ShippingAddress, &order.PaymentMethod, &order.Status, &order.PaymentStatus,
		&order.CreatedAt, &order.UpdatedAt)
}
