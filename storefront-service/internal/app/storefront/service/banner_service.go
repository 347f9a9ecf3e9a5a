package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"velora/storefront-service/internal/app/storefront/entity"
	"velora/storefront-service/internal/app/storefront/repository"
)

// BannerService обрабатывает промо-баннеры витрины
// Баннеры не кешируются: их список мал и запрашивается только главной страницей
type BannerService struct {
	bannerRepo repository.BannerRepository
}

func NewBannerService(bannerRepo repository.BannerRepository) *BannerService {
	return &BannerService{
		bannerRepo: bannerRepo,
	}
}

// CreateBanner создает новый баннер (по умолчанию активный)
func (s *BannerService) CreateBanner(ctx context.Context, req *entity.CreateBannerRequest) (*entity.Banner, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	banner := &entity.Banner{
		ImageURL:  req.ImageURL,
		Title:     req.Title,
		Link:      req.Link,
		Order:     req.Order,
		Active:    active,
		CreatedAt: time.Now(),
	}

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	return banner, nil
}

// ListBanners получает баннеры, опционально только активные
func (s *BannerService) ListBanners(ctx context.Context, activeOnly bool) ([]entity.Banner, error) {
	banners, err := s.bannerRepo.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get banners: %w", err)
	}

	return banners, nil
}

// UpdateBanner частично обновляет баннер
func (s *BannerService) UpdateBanner(ctx context.Context, id string, req *entity.UpdateBannerRequest) (*entity.Banner, error) {
	banner, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}

	if req.ImageURL != "" {
		banner.ImageURL = req.ImageURL
	}
	if req.Title != "" {
		banner.Title = req.Title
	}
	if req.Link != "" {
		banner.Link = req.Link
	}
	if req.Order != nil {
		banner.Order = *req.Order
	}
	if req.Active != nil {
		banner.Active = *req.Active
	}

	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}

	return banner, nil
}

// DeleteBanner удаляет баннер
func (s *BannerService) DeleteBanner(ctx context.Context, id string) error {
	if err := s.bannerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	return nil
}
