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

// ReviewService обрабатывает добавление отзывов и пересчет агрегатов рейтинга.
//
// Протокол append-а выполняется целиком под замком ключа товара: хранилище
// перезаписывает документ по принципу last-writer-wins, и без сериализации
// два конкурентных отзыва на один товар прочитали бы одинаковый список из N
// отзывов и записали бы два разных списка длины N+1 - второй коммит молча
// потерял бы первый отзыв. Отзывы на разные товары идут параллельно.
//
// locks - общий с CatalogService замок: update/delete каталога тоже
// перезаписывают документ целиком и обязаны сериализоваться с append-ом
type ReviewService struct {
	productRepo repository.ProductRepository
	cache       util.ProductCache
	producer    util.MessagePublisher
	locks       *util.KeyedMutex
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей.
// locks должен быть тем же экземпляром, что передан в NewCatalogService
func NewReviewService(
	productRepo repository.ProductRepository,
	cache util.ProductCache,
	producer util.MessagePublisher,
	locks *util.KeyedMutex,
) *ReviewService {
	return &ReviewService{
		productRepo: productRepo,
		cache:       cache,
		producer:    producer,
		locks:       locks,
	}
}

// SubmitReview добавляет отзыв пользователя к товару:
//  1. Загружает товар (NotFound при отсутствии)
//  2. Отклоняет повторный отзыв того же пользователя
//  3. Проверяет диапазон рейтинга [1,5]
//  4. Добавляет отзыв в конец списка
//  5. Пересчитывает numReviews/averageRating по полному списку
//  6. Записывает документ целиком одной атомарной операцией
//  7. Инвалидирует кеш каталога
//
// Все шаги выполняются под замком ключа товара (см. комментарий к типу)
func (s *ReviewService) SubmitReview(ctx context.Context, productID, userID string, req *entity.SubmitReviewRequest) (*entity.Product, error) {
	s.locks.Lock(productID)
	defer s.locks.Unlock(productID)

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInvalidID) {
			metrics.ReviewsRejected.WithLabelValues("not_found").Inc()
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	for _, r := range product.Reviews {
		if r.UserID == userID {
			metrics.ReviewsRejected.WithLabelValues("duplicate").Inc()
			return nil, ErrDuplicateReview
		}
	}

	if req.Rating < 1 || req.Rating > 5 {
		metrics.ReviewsRejected.WithLabelValues("invalid_rating").Inc()
		return nil, ErrInvalidRating
	}

	review := entity.Review{
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	// Порядок вставки сохраняется, пересортировки нет
	product.Reviews = append(product.Reviews, review)
	product.NumReviews, product.AverageRating = entity.RecomputeRating(product.Reviews)

	if err := s.productRepo.Replace(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.invalidateCatalog(ctx)
	metrics.ReviewsSubmitted.Inc()
	metrics.CatalogMutations.WithLabelValues("review_append").Inc()
	s.publishReviewEvent(ctx, product, &review)

	return product, nil
}

// GetReviews возвращает отзывы товара вместе с агрегатами рейтинга
func (s *ReviewService) GetReviews(ctx context.Context, productID string) (*entity.ReviewListResponse, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	reviews := product.Reviews
	if reviews == nil {
		reviews = []entity.Review{}
	}

	return &entity.ReviewListResponse{
		Reviews:       reviews,
		NumReviews:    product.NumReviews,
		AverageRating: product.AverageRating,
	}, nil
}

// invalidateCatalog удаляет снапшот каталога после успешной записи.
// Отзыв уже закоммичен вместе с агрегатами, поэтому ошибка инвалидации
// логируется и глотается - устаревание ограничено TTL
func (s *ReviewService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.InvalidateProducts(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate products cache, staleness bounded by TTL")
	}
}

func (s *ReviewService) publishReviewEvent(ctx context.Context, product *entity.Product, review *entity.Review) {
	event := entity.ReviewEvent{
		EventType:     "REVIEW_ADDED",
		ProductID:     product.ID.Hex(),
		UserID:        review.UserID,
		Rating:        review.Rating,
		NumReviews:    product.NumReviews,
		AverageRating: product.AverageRating,
		Timestamp:     time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal review event")
		return
	}

	if err := s.producer.PublishMessage(ctx, event.ProductID, eventData); err != nil {
		logger.Warn().Err(err).Msg("Failed to publish review event")
	}
}
