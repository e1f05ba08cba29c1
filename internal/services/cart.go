package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	appErrors "shopapi/internal/errors"
	"shopapi/internal/models"
	repository "shopapi/internal/repositories"

	"github.com/google/uuid"
)

type CartService interface {
	AddItem(ctx context.Context, req *models.AddCartItemRequest) (*models.Cart, error)
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// AddItem merges quantities when the product is already in the cart. The
// cart itself is created lazily on first add.
func (s *cartService) AddItem(ctx context.Context, req *models.AddCartItemRequest) (*models.Cart, error) {
	if _, err := s.productRepo.GetProductByID(ctx, req.ProductID); err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	cart, err := s.cartRepo.GetCartByUserID(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
		}

		cart = &models.Cart{
			ID:     uuid.New(),
			UserID: req.UserID,
			Items:  make(map[string]models.CartItem),
		}

		if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
			return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
		}
	}

	key := req.ProductID.String()

	item, exists := cart.Items[key]
	if exists {
		item.Quantity += req.Quantity
	} else {
		item = models.CartItem{ProductID: req.ProductID, Quantity: req.Quantity}
	}

	cart.Items[key] = item

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// GetCart expands line items with product name and price via one batched
// lookup.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.NotFoundError("Cart not found").WithError(err)
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products := map[uuid.UUID]*models.Product{}

	if len(ids) > 0 {
		products, err = s.productRepo.GetProductsByIDs(ctx, ids)
		if err != nil {
			return nil, appErrors.DatabaseError("Failed to load cart products").WithError(err)
		}
	}

	lines := make([]models.CartLine, 0, len(cart.Items))

	for _, item := range cart.Items {
		line := models.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}

		if product, ok := products[item.ProductID]; ok {
			line.Name = product.Name
			line.UnitPrice = product.Price
		}

		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID.String() < lines[j].ProductID.String()
	})

	return &models.CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     lines,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}

// UpdateItem replaces the stored quantity, it does not merge.
func (s *cartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.NotFoundError("Cart not found").WithError(err)
	}

	key := productID.String()

	item, exists := cart.Items[key]
	if !exists {
		return nil, appErrors.NotFoundError("Product not found in cart")
	}

	item.Quantity = quantity
	cart.Items[key] = item

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// RemoveItem succeeds whether or not the product was present.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.NotFoundError("Cart not found").WithError(err)
	}

	delete(cart.Items, productID.String())

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// ClearCart empties the line items, the cart entity itself persists.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.NotFoundError("Cart not found").WithError(err)
	}

	cart.Items = make(map[string]models.CartItem)

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return cart, nil
}
