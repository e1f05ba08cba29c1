package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopapi/internal/models"
	"shopapi/internal/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter models.ProductFilter, sort models.ProductSort, page, size int) ([]*models.Product, int, error)
	SearchProducts(ctx context.Context, term string) ([]*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

// sortable column whitelist, anything else falls back to price
var sortColumns = map[string]string{
	"price":     "price",
	"name":      "name",
	"category":  "category",
	"stock":     "stock",
	"createdAt": "created_at",
}

const productColumns = `id, name, description, price, category, stock, created_at, updated_at`

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (name, description, price, category, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price, product.Category, product.Stock).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Category, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// GetProductsByIDs performs one batched lookup for application-layer joins.
func (r *productRepository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	idStrs := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrs = append(idStrs, id.String())
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[])`

	rows, err := r.DB.QueryContext(dbCtx, query, pq.Array(idStrs))
	if err != nil {
		return nil, fmt.Errorf("querying products by ids: %w", err)
	}

	defer rows.Close()

	products := make(map[uuid.UUID]*models.Product, len(ids))

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Category, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}

		products[product.ID] = product
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4, stock = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price, product.Category, product.Stock, product.ID).
		Scan(&product.UpdatedAt)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ListProducts builds the filter as a conjunction of optional predicates.
func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter, sort models.ProductSort, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var conds []string

	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}

	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}

	if filter.InStock {
		conds = append(conds, "stock > 0")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int

	countQuery := `SELECT COUNT(*) FROM products` + where

	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[sort.Field]
	if !ok {
		column = "price"
	}

	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}

	offset := (page - 1) * size
	args = append(args, size, offset)

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, column, direction, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// SearchProducts matches the term case-insensitively against name,
// description, or category.
func (r *productRepository) SearchProducts(ctx context.Context, term string) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1
		ORDER BY name`

	rows, err := r.DB.QueryContext(dbCtx, query, "%"+term+"%")
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]*models.Product, error) {
	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Category, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
