package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"velora/pkg/logger"
	"velora/pkg/metrics"
	"velora/storefront-service/internal/app/storefront/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid object id")
)

const serviceName = "storefront-service"

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository создает новый репозиторий товаров
// Создает индекс по category для выборок витрины
func NewProductRepository(db *mongo.Database) ProductRepository {
	collection := db.Collection("products")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "sub_category", Value: 1},
		},
		Options: options.Index().SetName("category_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Индекс может уже существовать - работу не прерываем
		logger.Warn().Err(err).Msg("Failed to create index on products")
	}

	return &productRepository{
		collection: collection,
	}
}

// Create сохраняет новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, "products")
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "products")
	defer timer.ObserveDuration()

	var product entity.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// GetAll получает все товары каталога, новые первыми
// Сортировка фиксирована, чтобы кешируемый снапшот был детерминированным
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "products")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

// Replace перезаписывает документ товара целиком одной операцией.
// Список отзывов и агрегаты рейтинга всегда записываются вместе, поэтому
// читатель никогда не увидит агрегаты, посчитанные по другому списку
func (r *productRepository) Replace(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpReplace, "products")
	defer timer.ObserveDuration()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpReplace)
		return fmt.Errorf("failed to replace product: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар вместе со встроенными отзывами
func (r *productRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpDelete, "products")
	defer timer.ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpDelete)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}
