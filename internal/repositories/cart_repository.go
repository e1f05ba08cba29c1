package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"shopapi/internal/models"
	"shopapi/internal/utils"

	"github.com/google/uuid"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	UpdateCart(ctx context.Context, cart *models.Cart) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, user_id, items, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, cart.ID, cart.UserID, itemsJSON).
		Scan(&cart.CreatedAt, &cart.UpdatedAt)
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, `user_id`, userID)
}

func (r *cartRepository) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, `id`, id)
}

func (r *cartRepository) getCart(ctx context.Context, column string, key uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, user_id, items, created_at, updated_at FROM carts WHERE ` + column + ` = $1`

	cart := &models.Cart{}

	var itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, key).
		Scan(&cart.ID, &cart.UserID, &itemsJSON, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if cart.Items == nil {
		cart.Items = make(map[string]models.CartItem)
	}

	return cart, nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE carts
		SET items = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, itemsJSON, cart.ID)
	if err != nil {
		return fmt.Errorf("failed to update the cart: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
