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

type MockBannerService struct {
	mock.Mock
}

func (m *MockBannerService) CreateBanner(ctx context.Context, req *entity.CreateBannerRequest) (*entity.Banner, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Banner), args.Error(1)
}

func (m *MockBannerService) ListBanners(ctx context.Context, activeOnly bool) ([]entity.Banner, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Banner), args.Error(1)
}

func (m *MockBannerService) UpdateBanner(ctx context.Context, id string, req *entity.UpdateBannerRequest) (*entity.Banner, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Banner), args.Error(1)
}

func (m *MockBannerService) DeleteBanner(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestListBannersHandler_ActiveFilter(t *testing.T) {
	banners := []entity.Banner{{ID: primitive.NewObjectID(), Active: true}}

	mockService := new(MockBannerService)
	mockService.On("ListBanners", mock.Anything, true).Return(banners, nil)

	bannerHandler := NewBannerHandler(mockService)
	router := gin.New()
	router.GET("/banners", bannerHandler.ListBanners)

	req, _ := http.NewRequest(http.MethodGet, "/banners?active=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertCalled(t, "ListBanners", mock.Anything, true)
}

func TestCreateBannerHandler_ValidationError(t *testing.T) {
	mockService := new(MockBannerService)
	bannerHandler := NewBannerHandler(mockService)

	router := gin.New()
	router.POST("/banners", bannerHandler.CreateBanner)

	// image_url обязателен
	body, _ := json.Marshal(entity.CreateBannerRequest{Title: "No image"})
	req, _ := http.NewRequest(http.MethodPost, "/banners", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBanner", mock.Anything, mock.Anything)
}

func TestUpdateBannerHandler_NotFound(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	mockService := new(MockBannerService)
	mockService.On("UpdateBanner", mock.Anything, id, mock.Anything).Return(nil, service.ErrBannerNotFound)

	bannerHandler := NewBannerHandler(mockService)
	router := gin.New()
	router.PUT("/banners/:banner_id", bannerHandler.UpdateBanner)

	body, _ := json.Marshal(entity.UpdateBannerRequest{Title: "New"})
	req, _ := http.NewRequest(http.MethodPut, "/banners/"+id, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
