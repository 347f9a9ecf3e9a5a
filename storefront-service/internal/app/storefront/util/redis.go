package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"velora/pkg/metrics"
	"velora/storefront-service/internal/app/storefront/entity"

	"github.com/redis/go-redis/v9"
)

// Кеш хранит ровно одну запись - сериализованный снапшот всего каталога.
// Per-product записей нет: инвалидация всегда грубая, по одному ключу
const productsCacheKey = "products:all"

// ProductsCacheTTL - жёсткая граница устаревания снапшота.
// Если инвалидация после записи не прошла (падение между записью в store
// и DEL), устаревший снапшот доживает максимум до конца TTL
const ProductsCacheTTL = time.Hour

// Каждая операция с кешем ограничена коротким таймаутом: недоступный Redis
// не должен задерживать запрос, деградация - промах кеша
const cacheOpTimeout = 2 * time.Second

const serviceName = "storefront-service"

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromExisting оборачивает уже созданный клиент (используется в тестах)
func NewRedisClientFromExisting(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// GetProducts возвращает кешированный снапшот каталога.
// (products, nil) - попадание; (nil, nil) - промах; (nil, err) - кеш недоступен.
// Вызывающий обязан обрабатывать ошибку так же, как промах
func (r *RedisClient) GetProducts(ctx context.Context) ([]entity.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, productsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, "products")
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get products from cache: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to unmarshal cached products: %w", err)
	}

	metrics.RecordCacheHit(serviceName, "products")
	return products, nil
}

// SetProducts сохраняет снапшот каталога, безусловно перезаписывая
// существующую запись
func (r *RedisClient) SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, productsCacheKey, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set products in cache: %w", err)
	}

	return nil
}

// InvalidateProducts удаляет снапшот каталога.
// Идемпотентна: удаление отсутствующего ключа не является ошибкой
func (r *RedisClient) InvalidateProducts(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, productsCacheKey).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to invalidate products cache: %w", err)
	}

	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
