package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopapi/internal/api/handlers"
	appErrors "shopapi/internal/errors"
	"shopapi/internal/models"
	"shopapi/internal/services/mocks"
	"shopapi/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_ListProducts(t *testing.T) {
	t.Run("Success - Query Params Mapped To Filter And Sort", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).ListProducts()

		page := &models.PaginatedProducts{Items: []*models.Product{{ID: uuid.New()}}, TotalPages: 1, CurrentPage: 2}
		mockService.On("ListProducts", mock.Anything, mock.MatchedBy(func(f models.ProductFilter) bool {
			return f.Category == "Peripherals" && f.MinPrice != nil && *f.MinPrice == 10 && f.InStock
		}), models.ProductSort{Field: "price", Desc: true}, 2, 5).Return(page, nil).Once()

		target := "/api/v1/products?page=2&limit=5&sort=price&order=desc&category=Peripherals&minPrice=10&stockAvailable=true"
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, target, nil, nil)
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Non-Numeric Price Bound", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).ListProducts()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?minPrice=cheap", nil, nil)
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductHandler_CreateProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).CreateProduct()

		createReq := &models.CreateProductRequest{Name: "Keyboard", Description: "Mechanical", Price: 49.99, Category: "Peripherals", Stock: 25}
		product := &models.Product{ID: uuid.New(), Name: createReq.Name, Price: createReq.Price}
		mockService.On("CreateProduct", mock.Anything, mock.Anything).Return(product, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/products/addproduct", marshalBody(t, createReq), nil)
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Product created successfully", resp.Message)
	})

	t.Run("Failure - Non-Positive Price Rejected", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).CreateProduct()

		body := marshalBody(t, &models.CreateProductRequest{Name: "x", Description: "y", Price: 0, Category: "z", Stock: 1})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/products/addproduct", body, nil)
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})
}

func TestProductHandler_GetProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).GetProduct()

		product := &models.Product{ID: productID, Name: "Keyboard"}
		mockService.On("GetProductByID", mock.Anything, productID).Return(product, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String(),
			nil, map[string]string{"productId": productID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)

		var got models.Product
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, productID, got.ID)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).GetProduct()

		mockService.On("GetProductByID", mock.Anything, productID).Return(nil, appErrors.NotFoundError("Product not found")).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/"+productID.String(),
			nil, map[string]string{"productId": productID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failure - Malformed ID", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).GetProduct()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/42",
			nil, map[string]string{"productId": "42"})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("Success - Partial Body", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).UpdateProduct()

		product := &models.Product{ID: productID, Name: "Keyboard", Price: 39.99}
		mockService.On("UpdateProduct", mock.Anything, productID, mock.MatchedBy(func(r *models.UpdateProductRequest) bool {
			return r.Price != nil && *r.Price == 39.99 && r.Name == nil
		})).Return(product, nil).Once()

		body := marshalBody(t, map[string]any{"price": 39.99})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPut, "/api/v1/products/updateproduct/"+productID.String(),
			body, map[string]string{"productId": productID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).DeleteProduct()

		mockService.On("DeleteProduct", mock.Anything, productID).Return(nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodDelete, "/api/v1/products/deleteproduct/"+productID.String(),
			nil, map[string]string{"productId": productID.String()})
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Product deleted successfully", resp.Message)
	})
}

func TestProductHandler_SearchProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := &mocks.ProductService{}
		handler := handlers.NewProductHandler(mockService).SearchProducts()

		products := []*models.Product{{ID: uuid.New(), Name: "Keyboard"}}
		mockService.On("SearchProducts", mock.Anything, "key").Return(products, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/search?query=key", nil, nil)
		w := httptest.NewRecorder()

		// Act
		handler(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
		mockService.AssertExpectations(t)
	})
}
