package mocks

import (
	"context"
	"time"

	"velora/storefront-service/internal/app/storefront/entity"

	"github.com/stretchr/testify/mock"
)

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepository) Replace(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBannerRepository мок для BannerRepository
type MockBannerRepository struct {
	mock.Mock
}

func (m *MockBannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) GetByID(ctx context.Context, id string) (*entity.Banner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Banner), args.Error(1)
}

func (m *MockBannerRepository) GetAll(ctx context.Context, activeOnly bool) ([]entity.Banner, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Banner), args.Error(1)
}

func (m *MockBannerRepository) Update(ctx context.Context, banner *entity.Banner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIssueRepository мок для IssueRepository
type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepository) GetByID(ctx context.Context, id string) (*entity.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Issue), args.Error(1)
}

func (m *MockIssueRepository) Find(ctx context.Context, filter entity.IssueFilter) ([]entity.Issue, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Issue), args.Error(1)
}

func (m *MockIssueRepository) Update(ctx context.Context, issue *entity.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

// MockProductCache мок для кеша каталога
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) GetProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductCache) SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	args := m.Called(ctx, products, ttl)
	return args.Error(0)
}

func (m *MockProductCache) InvalidateProducts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
