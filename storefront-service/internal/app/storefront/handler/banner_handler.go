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

type BannerServiceInterface interface {
	CreateBanner(ctx context.Context, req *entity.CreateBannerRequest) (*entity.Banner, error)
	ListBanners(ctx context.Context, activeOnly bool) ([]entity.Banner, error)
	UpdateBanner(ctx context.Context, id string, req *entity.UpdateBannerRequest) (*entity.Banner, error)
	DeleteBanner(ctx context.Context, id string) error
}

type BannerHandler struct {
	bannerService BannerServiceInterface
	validator     *validator.Validate
}

func NewBannerHandler(bannerService BannerServiceInterface) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
		validator:     validator.New(),
	}
}

// ListBanners возвращает баннеры витрины.
// ?active=true отдает только активные - этим пользуется публичная витрина,
// админка запрашивает без фильтра
func (h *BannerHandler) ListBanners(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	banners, err := h.bannerService.ListBanners(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
		return
	}

	c.JSON(http.StatusOK, entity.BannerListResponse{
		Banners: banners,
		Total:   len(banners),
	})
}

func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req entity.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	banner, err := h.bannerService.CreateBanner(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}

	c.JSON(http.StatusCreated, banner)
}

func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	bannerID := c.Param("banner_id")
	if bannerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Banner ID is required"})
		return
	}

	var req entity.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	banner, err := h.bannerService.UpdateBanner(c.Request.Context(), bannerID, &req)
	if err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
		return
	}

	c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	bannerID := c.Param("banner_id")
	if bannerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Banner ID is required"})
		return
	}

	if err := h.bannerService.DeleteBanner(c.Request.Context(), bannerID); err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Banner deleted successfully",
	})
}
