package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"velora/pkg/logger"
	"velora/pkg/metrics"
)

func SetupRoutes(
	catalogHandler *CatalogHandler,
	reviewHandler *ReviewHandler,
	bannerHandler *BannerHandler,
	issueHandler *IssueHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("storefront-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storefront-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	products := router.Group("/products")
	{
		// Чтение каталога публичное
		products.GET("/", catalogHandler.ListProducts)
		products.GET("/:product_id", catalogHandler.GetProduct)
		products.GET("/:product_id/reviews", reviewHandler.GetReviews)

		// Отзыв оставляет только аутентифицированный пользователь
		products.POST("/:product_id/reviews", authMiddleware.Authenticate(), reviewHandler.SubmitReview)

		// Мутации каталога только для администратора
		admin := products.Group("")
		admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireAdmin())
		{
			admin.POST("/", catalogHandler.CreateProduct)
			admin.PUT("/:product_id", catalogHandler.UpdateProduct)
			admin.DELETE("/:product_id", catalogHandler.DeleteProduct)
		}
	}

	banners := router.Group("/banners")
	{
		banners.GET("/", bannerHandler.ListBanners)

		admin := banners.Group("")
		admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireAdmin())
		{
			admin.POST("/", bannerHandler.CreateBanner)
			admin.PUT("/:banner_id", bannerHandler.UpdateBanner)
			admin.DELETE("/:banner_id", bannerHandler.DeleteBanner)
		}
	}

	issues := router.Group("/issues")
	{
		// Обращение в поддержку принимается и без аккаунта
		issues.POST("/", issueHandler.CreateIssue)

		admin := issues.Group("")
		admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireAdmin())
		{
			admin.GET("/", issueHandler.ListIssues)
			admin.PATCH("/:issue_id", issueHandler.UpdateIssue)
		}
	}

	return router
}
