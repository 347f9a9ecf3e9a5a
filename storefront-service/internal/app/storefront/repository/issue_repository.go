package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"velora/pkg/metrics"
	"velora/storefront-service/internal/app/storefront/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrIssueNotFound = errors.New("issue not found")

// Ограничение выборки обращений в админке
const issueListLimit = 200

type issueRepository struct {
	collection *mongo.Collection
}

// NewIssueRepository создает новый репозиторий обращений в поддержку
func NewIssueRepository(db *mongo.Database) IssueRepository {
	return &issueRepository{
		collection: db.Collection("issues"),
	}
}

func (r *issueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	issue.CreatedAt = time.Now()
	issue.UpdatedAt = issue.CreatedAt

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, "issues")
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, issue)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create issue: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		issue.ID = oid
	}

	return nil
}

func (r *issueRepository) GetByID(ctx context.Context, id string) (*entity.Issue, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var issue entity.Issue
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIssueNotFound
		}
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return &issue, nil
}

// Find получает обращения по фильтрам админки, новые первыми
func (r *issueRepository) Find(ctx context.Context, filter entity.IssueFilter) ([]entity.Issue, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, "issues")
	defer timer.ObserveDuration()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}
	if filter.OrderID != "" {
		query["order_id"] = filter.OrderID
	}
	if filter.Query != "" {
		regex := primitive.Regex{Pattern: filter.Query, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"subject": regex},
			bson.M{"message": regex},
			bson.M{"email": regex},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(issueListLimit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find issues: %w", err)
	}
	defer cursor.Close(ctx)

	var issues []entity.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to decode issues: %w", err)
	}

	return issues, nil
}

func (r *issueRepository) Update(ctx context.Context, issue *entity.Issue) error {
	issue.UpdatedAt = time.Now()

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, "issues")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"status":      issue.Status,
			"admin_notes": issue.AdminNotes,
			"updated_at":  issue.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": issue.ID}, update)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to update issue: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrIssueNotFound
	}

	return nil
}
