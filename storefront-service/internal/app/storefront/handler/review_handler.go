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

type ReviewServiceInterface interface {
	SubmitReview(ctx context.Context, productID, userID string, req *entity.SubmitReviewRequest) (*entity.Product, error)
	GetReviews(ctx context.Context, productID string) (*entity.ReviewListResponse, error)
}

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// SubmitReview добавляет отзыв аутентифицированного пользователя к товару.
// Возвращает товар с пересчитанными num_reviews/average_rating
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userIDStr, ok := userID.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return
	}

	productID := c.Param("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	var req entity.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.reviewService.SubmitReview(c.Request.Context(), productID, userIDStr, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidRating) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}
		if errors.Is(err, service.ErrDuplicateReview) {
			c.JSON(http.StatusConflict, gin.H{"error": "User has already reviewed this product"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetReviews возвращает отзывы товара вместе с агрегатами рейтинга
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	productID := c.Param("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	reviews, err := h.reviewService.GetReviews(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}
