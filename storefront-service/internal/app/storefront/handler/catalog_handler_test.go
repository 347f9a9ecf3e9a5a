package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"velora/storefront-service/internal/app/storefront/entity"
	"velora/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, id string, req *entity.UpdateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestListProductsHandler_Success(t *testing.T) {
	products := []entity.Product{
		{ID: primitive.NewObjectID(), Name: "Linen Shirt", Price: 49.90},
		{ID: primitive.NewObjectID(), Name: "Denim Jacket", Price: 89.90},
	}

	mockService := new(MockCatalogService)
	mockService.On("ListProducts", mock.Anything).Return(products, nil)

	catalogHandler := NewCatalogHandler(mockService)
	router := gin.New()
	router.GET("/products", catalogHandler.ListProducts)

	req, _ := http.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.ProductListResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 2, response.Total)
	assert.Len(t, response.Products, 2)
}

func TestGetProductHandler_NotFound(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	mockService := new(MockCatalogService)
	mockService.On("GetProduct", mock.Anything, id).Return(nil, service.ErrProductNotFound)

	catalogHandler := NewCatalogHandler(mockService)
	router := gin.New()
	router.GET("/products/:product_id", catalogHandler.GetProduct)

	req, _ := http.NewRequest(http.MethodGet, "/products/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateProductHandler_Success(t *testing.T) {
	created := &entity.Product{ID: primitive.NewObjectID(), Name: "Linen Shirt", Price: 49.90}

	mockService := new(MockCatalogService)
	mockService.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entity.CreateProductRequest")).Return(created, nil)

	catalogHandler := NewCatalogHandler(mockService)
	router := gin.New()
	router.POST("/products", catalogHandler.CreateProduct)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:        "Linen Shirt",
		Description: "Lightweight summer shirt",
		Price:       49.90,
		Category:    "Men",
		SubCategory: "Topwear",
		Images:      []string{"https://cdn.example.com/shirt.jpg"},
		Sizes:       []string{"M"},
	})
	req, _ := http.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateProductHandler_ValidationError(t *testing.T) {
	mockService := new(MockCatalogService)
	catalogHandler := NewCatalogHandler(mockService)

	router := gin.New()
	router.POST("/products", catalogHandler.CreateProduct)

	// Отрицательная цена и нет изображений
	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:        "Linen Shirt",
		Description: "Lightweight summer shirt",
		Price:       -5,
		Category:    "Men",
		SubCategory: "Topwear",
		Sizes:       []string{"M"},
	})
	req, _ := http.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestUpdateProductHandler_NotFound(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	mockService := new(MockCatalogService)
	mockService.On("UpdateProduct", mock.Anything, id, mock.Anything).Return(nil, service.ErrProductNotFound)

	catalogHandler := NewCatalogHandler(mockService)
	router := gin.New()
	router.PUT("/products/:product_id", catalogHandler.UpdateProduct)

	body, _ := json.Marshal(entity.UpdateProductRequest{Name: "New Name"})
	req, _ := http.NewRequest(http.MethodPut, "/products/"+id, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProductHandler_Success(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	mockService := new(MockCatalogService)
	mockService.On("DeleteProduct", mock.Anything, id).Return(nil)

	catalogHandler := NewCatalogHandler(mockService)
	router := gin.New()
	router.DELETE("/products/:product_id", catalogHandler.DeleteProduct)

	req, _ := http.NewRequest(http.MethodDelete, "/products/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
