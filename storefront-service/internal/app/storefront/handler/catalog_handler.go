package handler

import (
	"context"
	"errors"
	"net/http"

	"velora/storefront-service/internal/app/storefront/entity"
	"velora/storefront-service/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CatalogServiceInterface interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type CatalogHandler struct {
	catalogService CatalogServiceInterface
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// ListProducts возвращает весь каталог. Читает сквозь кеш:
// попадание отвечает из Redis, промах идет в хранилище
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID := c.Param("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), productID, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Product deleted successfully",
	})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
