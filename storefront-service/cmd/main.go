package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"velora/pkg/logger"
	"velora/storefront-service/internal/app/storefront/config"
	"velora/storefront-service/internal/app/storefront/handler"
	"velora/storefront-service/internal/app/storefront/repository"
	"velora/storefront-service/internal/app/storefront/service"
	"velora/storefront-service/internal/app/storefront/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("storefront-service", logLevel)

	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)

	redisCache, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisCache.Close()
	logger.Info().
		Str("address", cfg.Redis.Address()).
		Msg("Connected to Redis")

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	productRepo := repository.NewProductRepository(db)
	bannerRepo := repository.NewBannerRepository(db)
	issueRepo := repository.NewIssueRepository(db)

	// Один замок на оба сервиса: все whole-document записи товара сериализуются
	productLocks := util.NewKeyedMutex()

	catalogService := service.NewCatalogService(productRepo, redisCache, kafkaProducer, productLocks)
	reviewService := service.NewReviewService(productRepo, redisCache, kafkaProducer, productLocks)
	bannerService := service.NewBannerService(bannerRepo)
	issueService := service.NewIssueService(issueRepo)

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	bannerHandler := handler.NewBannerHandler(bannerService)
	issueHandler := handler.NewIssueHandler(issueService)

	router := handler.SetupRoutes(catalogHandler, reviewHandler, bannerHandler, issueHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Storefront Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Storefront Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Storefront Service stopped gracefully")
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err = mongo.Connect(ctx, clientOptions)
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pingCancel()

			if err = client.Ping(pingCtx, nil); err == nil {
				return client, nil
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}
