package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	appErrors "shopapi/internal/errors"
	"shopapi/internal/models"
	repository "shopapi/internal/repositories"
	"shopapi/internal/utils"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter models.ProductFilter, sort models.ProductSort, page, limit int) (*models.PaginatedProducts, error)
	SearchProducts(ctx context.Context, term string) ([]*models.Product, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        utils.SanitizeText(req.Name),
		Description: utils.SanitizeText(req.Description),
		Price:       req.Price,
		Category:    utils.SanitizeText(req.Category),
		Stock:       req.Stock,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	if req.Name != nil {
		product.Name = utils.SanitizeText(*req.Name)
	}

	if req.Description != nil {
		product.Description = utils.SanitizeText(*req.Description)
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.Category != nil {
		product.Category = utils.SanitizeText(*req.Category)
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	return nil
}

func (s *productService) ListProducts(ctx context.Context, filter models.ProductFilter, sort models.ProductSort, page, limit int) (*models.PaginatedProducts, error) {
	if page < 1 {
		page = 1
	}

	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	products, total, err := s.repo.ListProducts(ctx, filter, sort, page, limit)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return &models.PaginatedProducts{
		Items:       products,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}, nil
}

func (s *productService) SearchProducts(ctx context.Context, term string) ([]*models.Product, error) {
	products, err := s.repo.SearchProducts(ctx, term)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search products").WithError(err)
	}

	return products, nil
}
