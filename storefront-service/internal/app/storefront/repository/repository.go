package repository

import (
	"context"

	"velora/storefront-service/internal/app/storefront/entity"
)

// ProductRepository определяет методы для работы с товарами в MongoDB.
// Replace перезаписывает документ целиком: список отзывов и агрегаты рейтинга
// попадают в хранилище одной атомарной записью
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	Replace(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}

// BannerRepository определяет методы для работы с баннерами
type BannerRepository interface {
	Create(ctx context.Context, banner *entity.Banner) error
	GetByID(ctx context.Context, id string) (*entity.Banner, error)
	GetAll(ctx context.Context, activeOnly bool) ([]entity.Banner, error)
	Update(ctx context.Context, banner *entity.Banner) error
	Delete(ctx context.Context, id string) error
}

// IssueRepository определяет методы для работы с обращениями в поддержку
type IssueRepository interface {
	Create(ctx context.Context, issue *entity.Issue) error
	GetByID(ctx context.Context, id string) (*entity.Issue, error)
	Find(ctx context.Context, filter entity.IssueFilter) ([]entity.Issue, error)
	Update(ctx context.Context, issue *entity.Issue) error
}
