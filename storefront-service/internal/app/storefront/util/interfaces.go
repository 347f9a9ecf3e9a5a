package util

import (
	"context"
	"time"

	"velora/storefront-service/internal/app/storefront/entity"
)

// ProductCache интерфейс кеша снапшота каталога
// Используется для dependency injection и подмены в тестах.
// Populate выполняет только read path, invalidate - только пишущие операции
type ProductCache interface {
	GetProducts(ctx context.Context) ([]entity.Product, error)
	SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error
	InvalidateProducts(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
