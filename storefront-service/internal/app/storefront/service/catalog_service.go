package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"velora/pkg/logger"
	"velora/pkg/metrics"
	"velora/storefront-service/internal/app/storefront/entity"
	"velora/storefront-service/internal/app/storefront/repository"
	"velora/storefront-service/internal/app/storefront/util"
)

// CatalogService обрабатывает каталог товаров: read path с кешем снапшота
// и все пишущие операции по схеме "запись в store, затем инвалидация кеша".
//
// Порядок фиксирован: инвалидация до коммита позволила бы параллельному
// читателю переналить в кеш данные до мутации, и запись жила бы там до
// конца TTL. Поэтому DEL выполняется строго после успешной записи,
// а ошибка DEL не отменяет уже выполненную мутацию.
//
// locks - общий с ReviewService замок по ключу товара. Update и Delete
// выполняют load -> mutate -> whole-document write и без сериализации
// с review path затерли бы отзыв, закоммиченный между чтением и записью
type CatalogService struct {
	productRepo repository.ProductRepository
	cache       util.ProductCache
	producer    util.MessagePublisher
	locks       *util.KeyedMutex
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей.
// locks должен быть тем же экземпляром, что передан в NewReviewService
func NewCatalogService(
	productRepo repository.ProductRepository,
	cache util.ProductCache,
	producer util.MessagePublisher,
	locks *util.KeyedMutex,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		cache:       cache,
		producer:    producer,
		locks:       locks,
	}
}

// ListProducts возвращает весь каталог с кешированием снапшота в Redis.
// Попадание - ответ без обращения к MongoDB; промах или недоступный кеш -
// загрузка из MongoDB и перезаполнение кеша на фиксированный TTL
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	cached, err := s.cache.GetProducts(ctx)
	if err != nil {
		// Недоступный кеш обрабатывается как промах
		logger.Warn().Err(err).Msg("Products cache unavailable, falling back to store")
	}
	if cached != nil {
		return cached, nil
	}

	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	if products == nil {
		products = []entity.Product{}
	}

	if err := s.cache.SetProducts(ctx, products, util.ProductsCacheTTL); err != nil {
		// Данные уже получены из store, проблемы кеша не критичны
		logger.Warn().Err(err).Msg("Failed to cache products snapshot")
	}

	return products, nil
}

// GetProduct получает товар по ID напрямую из MongoDB (точечные запросы не кешируются)
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// CreateProduct создает новый товар и инвалидирует кеш каталога
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	product := &entity.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Images:      req.Images,
		Sizes:       req.Sizes,
		Bestseller:  req.Bestseller,
		CreatedAt:   time.Now(),
		Reviews:     []entity.Review{},
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateCatalog(ctx)
	metrics.CatalogMutations.WithLabelValues("create").Inc()
	s.publishProductEvent(ctx, "PRODUCT_CREATED", product)

	return product, nil
}

// UpdateProduct частично обновляет товар и инвалидирует кеш каталога.
// Список отзывов и агрегаты рейтинга не трогает - ими владеет review path.
// Вся последовательность load -> mutate -> replace идет под замком ключа
// товара: запись возвращает прочитанные reviews/агрегаты обратно в документ,
// и без замка отзыв, принятый между чтением и записью, был бы затерт
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *entity.UpdateProductRequest) (*entity.Product, error) {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.SubCategory != "" {
		product.SubCategory = req.SubCategory
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.Bestseller != nil {
		product.Bestseller = *req.Bestseller
	}
	product.Images = mergeImageSlots(product.Images, req.Images)

	if err := s.productRepo.Replace(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidateCatalog(ctx)
	metrics.CatalogMutations.WithLabelValues("update").Inc()
	s.publishProductEvent(ctx, "PRODUCT_UPDATED", product)

	return product, nil
}

// DeleteProduct удаляет товар (вместе со встроенными отзывами) и инвалидирует кеш.
// Под замком ключа товара: параллельный SubmitReview либо завершается до
// удаления, либо получает NotFound, но не пишет документ обратно после DELETE
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.invalidateCatalog(ctx)
	metrics.CatalogMutations.WithLabelValues("delete").Inc()
	s.publishProductEvent(ctx, "PRODUCT_DELETED", product)

	return nil
}

// invalidateCatalog удаляет снапшот каталога после успешной записи в store.
// Ошибка намеренно глотается: мутация уже закоммичена, устаревание кеша
// ограничено TTL, поэтому вызывающему возвращается успех
func (s *CatalogService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.InvalidateProducts(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate products cache, staleness bounded by TTL")
	}
}

// publishProductEvent отправляет событие о товаре в Kafka
// Key - ID товара для партиционирования
func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, product *entity.Product) {
	event := entity.ProductEvent{
		EventType: eventType,
		ProductID: product.ID.Hex(),
		Name:      product.Name,
		Price:     product.Price,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal product event")
		return
	}

	if err := s.producer.PublishMessage(ctx, event.ProductID, eventData); err != nil {
		// Товар уже записан, проблемы с Kafka не критичны
		logger.Warn().Err(err).Str("event_type", eventType).Msg("Failed to publish product event")
	}
}

// mergeImageSlots заменяет изображения по слотам: непустой элемент запроса
// перезаписывает слот с тем же индексом, пустой оставляет существующий URL
func mergeImageSlots(current, updates []string) []string {
	if len(updates) == 0 {
		return current
	}

	merged := make([]string, len(current))
	copy(merged, current)

	for i, url := range updates {
		if url == "" {
			continue
		}
		if i < len(merged) {
			merged[i] = url
		} else {
			merged = append(merged, url)
		}
	}

	return merged
}
