package service

import (
	"context"
	"testing"

	"velora/storefront-service/internal/app/storefront/entity"
	"velora/storefront-service/internal/app/storefront/repository"
	"velora/storefront-service/internal/app/storefront/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateBanner_ActiveByDefault(t *testing.T) {
	bannerRepo := new(mocks.MockBannerRepository)
	service := NewBannerService(bannerRepo)
	ctx := context.Background()

	bannerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Banner")).Return(nil)

	result, err := service.CreateBanner(ctx, &entity.CreateBannerRequest{
		ImageURL: "https://cdn.example.com/sale.jpg",
		Title:    "Summer Sale",
	})

	assert.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, "Summer Sale", result.Title)
}

func TestListBanners_ActiveOnlyPassedThrough(t *testing.T) {
	bannerRepo := new(mocks.MockBannerRepository)
	service := NewBannerService(bannerRepo)
	ctx := context.Background()

	banners := []entity.Banner{{ID: primitive.NewObjectID(), Active: true}}
	bannerRepo.On("GetAll", ctx, true).Return(banners, nil)

	result, err := service.ListBanners(ctx, true)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	bannerRepo.AssertCalled(t, "GetAll", ctx, true)
}

func TestUpdateBanner_NotFound(t *testing.T) {
	bannerRepo := new(mocks.MockBannerRepository)
	service := NewBannerService(bannerRepo)
	ctx := context.Background()

	id := primitive.NewObjectID().Hex()
	bannerRepo.On("GetByID", ctx, id).Return(nil, repository.ErrBannerNotFound)

	result, err := service.UpdateBanner(ctx, id, &entity.UpdateBannerRequest{Title: "New"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrBannerNotFound)
}

func TestUpdateBanner_PartialUpdate(t *testing.T) {
	bannerRepo := new(mocks.MockBannerRepository)
	service := NewBannerService(bannerRepo)
	ctx := context.Background()

	banner := &entity.Banner{
		ID:       primitive.NewObjectID(),
		ImageURL: "https://cdn.example.com/old.jpg",
		Title:    "Old",
		Order:    1,
		Active:   true,
	}
	bannerRepo.On("GetByID", ctx, banner.ID.Hex()).Return(banner, nil)
	bannerRepo.On("Update", ctx, mock.Anything).Return(nil)

	inactive := false
	result, err := service.UpdateBanner(ctx, banner.ID.Hex(), &entity.UpdateBannerRequest{Active: &inactive})

	assert.NoError(t, err)
	assert.False(t, result.Active)
	assert.Equal(t, "Old", result.Title)
}

func TestDeleteBanner_NotFound(t *testing.T) {
	bannerRepo := new(mocks.MockBannerRepository)
	service := NewBannerService(bannerRepo)
	ctx := context.Background()

	id := primitive.NewObjectID().Hex()
	bannerRepo.On("Delete", ctx, id).Return(repository.ErrBannerNotFound)

	err := service.DeleteBanner(ctx, id)

	assert.ErrorIs(t, err, ErrBannerNotFound)
}
