package util

import (
	"context"
	"testing"
	"time"

	"velora/storefront-service/internal/app/storefront/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCacheTestSuite тестовый suite для Redis кеша каталога
type ProductCacheTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	cache     *RedisClient
}

func TestProductCacheSuite(t *testing.T) {
	suite.Run(t, new(ProductCacheTestSuite))
}

func (s *ProductCacheTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.cache = NewRedisClientFromExisting(redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	}))
}

func (s *ProductCacheTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *ProductCacheTestSuite) TearDownSuite() {
	s.cache.Close()
	s.miniRedis.Close()
}

func sampleProducts() []entity.Product {
	return []entity.Product{
		{
			ID:          primitive.NewObjectID(),
			Name:        "Linen Shirt",
			Description: "Lightweight summer shirt",
			Price:       49.90,
			Category:    "Men",
			SubCategory: "Topwear",
			Images:      []string{"https://cdn.example.com/shirt.jpg"},
			Sizes:       []string{"S", "M", "L"},
			CreatedAt:   time.Now().Truncate(time.Millisecond),
			Reviews:     []entity.Review{},
		},
		{
			ID:            primitive.NewObjectID(),
			Name:          "Denim Jacket",
			Price:         119.00,
			Category:      "Women",
			SubCategory:   "Winterwear",
			NumReviews:    2,
			AverageRating: 4.5,
		},
	}
}

func (s *ProductCacheTestSuite) TestGetProducts_Miss() {
	products, err := s.cache.GetProducts(context.Background())

	s.NoError(err)
	s.Nil(products)
}

func (s *ProductCacheTestSuite) TestSetThenGet_Hit() {
	ctx := context.Background()
	stored := sampleProducts()

	err := s.cache.SetProducts(ctx, stored, ProductsCacheTTL)
	s.NoError(err)

	cached, err := s.cache.GetProducts(ctx)
	s.NoError(err)
	s.Len(cached, 2)
	s.Equal(stored[0].ID, cached[0].ID)
	s.Equal(stored[0].Name, cached[0].Name)
	s.Equal(4.5, cached[1].AverageRating)
}

func (s *ProductCacheTestSuite) TestSetProducts_Overwrite() {
	ctx := context.Background()

	s.NoError(s.cache.SetProducts(ctx, sampleProducts(), ProductsCacheTTL))

	// Повторный put безусловно перезаписывает существующую запись
	replacement := sampleProducts()[:1]
	s.NoError(s.cache.SetProducts(ctx, replacement, ProductsCacheTTL))

	cached, err := s.cache.GetProducts(ctx)
	s.NoError(err)
	s.Len(cached, 1)
}

func (s *ProductCacheTestSuite) TestInvalidate_Idempotent() {
	ctx := context.Background()

	s.NoError(s.cache.SetProducts(ctx, sampleProducts(), ProductsCacheTTL))

	// Двойная инвалидация подряд не возвращает ошибку
	s.NoError(s.cache.InvalidateProducts(ctx))
	s.NoError(s.cache.InvalidateProducts(ctx))

	products, err := s.cache.GetProducts(ctx)
	s.NoError(err)
	s.Nil(products)
}

func (s *ProductCacheTestSuite) TestInvalidate_AbsentKey() {
	err := s.cache.InvalidateProducts(context.Background())
	s.NoError(err)
}

func (s *ProductCacheTestSuite) TestTTL_Expires() {
	ctx := context.Background()

	s.NoError(s.cache.SetProducts(ctx, sampleProducts(), ProductsCacheTTL))

	// До истечения TTL снапшот на месте
	cached, err := s.cache.GetProducts(ctx)
	s.NoError(err)
	s.NotNil(cached)

	// Пропущенная инвалидация самоизлечивается по истечении TTL
	s.miniRedis.FastForward(ProductsCacheTTL + time.Second)

	cached, err = s.cache.GetProducts(ctx)
	s.NoError(err)
	s.Nil(cached)
}

// TestUnavailable_ReportsError проверяет, что при недоступном Redis операции
// возвращают ошибку, которую вызывающие обрабатывают как промах/no-op
func TestUnavailable_ReportsError(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	cache := NewRedisClientFromExisting(redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	}))
	defer cache.Close()

	mr.Close()

	ctx := context.Background()

	_, err = cache.GetProducts(ctx)
	require.Error(t, err)

	err = cache.SetProducts(ctx, sampleProducts(), ProductsCacheTTL)
	require.Error(t, err)

	err = cache.InvalidateProducts(ctx)
	require.Error(t, err)
}
