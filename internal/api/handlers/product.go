package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"shopapi/internal/api/middleware"
	"shopapi/internal/models"
	service "shopapi/internal/services"
	"shopapi/internal/utils"
	"shopapi/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		query := r.URL.Query()

		page, _ := strconv.Atoi(query.Get("page"))
		limit, _ := strconv.Atoi(query.Get("limit"))

		filter := models.ProductFilter{
			Category: query.Get("category"),
			InStock:  query.Get("stockAvailable") != "",
		}

		if v := query.Get("minPrice"); v != "" {
			minPrice, err := strconv.ParseFloat(v, 64)
			if err != nil {
				response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))

				return
			}

			filter.MinPrice = &minPrice
		}

		if v := query.Get("maxPrice"); v != "" {
			maxPrice, err := strconv.ParseFloat(v, 64)
			if err != nil {
				response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))

				return
			}

			filter.MaxPrice = &maxPrice
		}

		sort := models.ProductSort{
			Field: query.Get("sort"),
			Desc:  query.Get("order") == "desc",
		}

		result, err := h.productService.ListProducts(r.Context(), filter, sort, page, limit)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Product created", slog.String("productId", product.ID.String()))
		response.SuccessMessage(w, http.StatusCreated, "Product created successfully", product)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		productID, ok := parsePathUUID(w, r, "productId")
		if !ok {
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), productID, &req)
		if err != nil {
			logger.Warn("Failed to update product", slog.String("productId", productID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Product updated successfully", product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		productID, ok := parsePathUUID(w, r, "productId")
		if !ok {
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), productID); err != nil {
			logger.Warn("Failed to delete product", slog.String("productId", productID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "Product deleted successfully", nil)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := parsePathUUID(w, r, "productId")
		if !ok {
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) SearchProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		term := r.URL.Query().Get("query")

		products, err := h.productService.SearchProducts(r.Context(), term)
		if err != nil {
			logger.Error("Product search failed", slog.String("term", term), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}
