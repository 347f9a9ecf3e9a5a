package repository

import (
	"context"
	"errors"
	"fmt"

	"velora/pkg/metrics"
	"velora/storefront-service/internal/app/storefront/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrBannerNotFound = errors.New("banner not found")

type bannerRepository struct {
	collection *mongo.Collection
}

// NewBannerRepository создает новый репозиторий баннеров
func NewBannerRepository(db *mongo.Database) BannerRepository {
	return &bannerRepository{
		collection: db.Collection("banners"),
	}
}

func (r *bannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, "banners")
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, banner)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create banner: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		banner.ID = oid
	}

	return nil
}

func (r *bannerRepository) GetByID(ctx context.Context, id string) (*entity.Banner, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var banner entity.Banner
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&banner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBannerNotFound
		}
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}

	return &banner, nil
}

// GetAll получает баннеры, отсортированные по полю order и дате создания
func (r *bannerRepository) GetAll(ctx context.Context, activeOnly bool) ([]entity.Banner, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "banners")
	defer timer.ObserveDuration()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find banners: %w", err)
	}
	defer cursor.Close(ctx)

	var banners []entity.Banner
	if err := cursor.All(ctx, &banners); err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to decode banners: %w", err)
	}

	return banners, nil
}

func (r *bannerRepository) Update(ctx context.Context, banner *entity.Banner) error {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, "banners")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"image_url": banner.ImageURL,
			"title":     banner.Title,
			"link":      banner.Link,
			"order":     banner.Order,
			"active":    banner.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": banner.ID}, update)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to update banner: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrBannerNotFound
	}

	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpDelete, "banners")
	defer timer.ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpDelete)
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrBannerNotFound
	}

	return nil
}
