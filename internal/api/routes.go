package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"phFolio/internal/api/middleware"
	"phFolio/internal/auth"
	"phFolio/internal/config"
	"phFolio/internal/content"
	"phFolio/internal/storage"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
) {
	store := content.NewStore(db, func(ctx context.Context, objectKey string) (string, error) {
		return storageClient.GeneratePresignedURL(ctx, objectKey, 15*time.Minute)
	})

	authHandler := NewAuthHandler(db, authService, redisClient, logger,
		cfg.Auth.LoginRateLimitPerHour, cfg.Auth.LoginLockThreshold, cfg.Auth.LoginLockTTL, cfg.API.CookieDomain)
	profileHandler := NewProfileHandler(db)
	collectionHandler := NewCollectionHandler(db)
	cvHandler := NewCVHandler(db, store, asynqClient, storageClient, 10)
	portfolioHandler := NewPortfolioHandler(db, store, asynqClient, storageClient, cfg.Publish.PublicBaseURL)
	subscriptionHandler := NewSubscriptionHandler(db)
	assetHandler := NewAssetHandler(db, storageClient, logger, cfg.Clamd.Addr)
	wsHandler := NewWsHandler(store, redisClient, authService, logger, cfg.API.AllowedOrigins)

	authMiddleware := middleware.AuthMiddleware(authService)
	internalMiddleware := middleware.InternalSecretMiddleware(cfg.API.InternalSecret)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		// 公开作品集页面，无需鉴权
		v1.GET("/p/:slug", portfolioHandler.GetPublic)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		profileGroup := v1.Group("")
		profileGroup.Use(authMiddleware)
		{
			profileGroup.GET("/profile", profileHandler.GetProfile)
			profileGroup.PUT("/profile", profileHandler.UpsertProfile)
			profileGroup.PUT("/locale", profileHandler.UpdateLocale)
			profileGroup.PUT("/theme", profileHandler.UpsertTheme)
		}

		collections := v1.Group("")
		collections.Use(authMiddleware)
		{
			collections.GET("/experiences", collectionHandler.ListExperiences)
			collections.POST("/experiences", collectionHandler.CreateExperience)
			collections.PUT("/experiences/:id", collectionHandler.UpdateExperience)
			collections.DELETE("/experiences/:id", collectionHandler.DeleteExperience)

			collections.GET("/projects", collectionHandler.ListProjects)
			collections.POST("/projects", collectionHandler.CreateProject)
			collections.PUT("/projects/:id", collectionHandler.UpdateProject)
			collections.DELETE("/projects/:id", collectionHandler.DeleteProject)

			collections.GET("/articles", collectionHandler.ListArticles)
			collections.POST("/articles", collectionHandler.CreateArticle)
			collections.PUT("/articles/:id", collectionHandler.UpdateArticle)
			collections.DELETE("/articles/:id", collectionHandler.DeleteArticle)

			collections.GET("/videos", collectionHandler.ListVideos)
			collections.POST("/videos", collectionHandler.CreateVideo)
			collections.PUT("/videos/:id", collectionHandler.UpdateVideo)
			collections.DELETE("/videos/:id", collectionHandler.DeleteVideo)
		}

		cvGroup := v1.Group("/cv")
		cvGroup.Use(authMiddleware)
		{
			cvGroup.GET("", cvHandler.ListCVs)
			cvGroup.POST("", cvHandler.CreateCV)
			cvGroup.GET("/preview", cvHandler.PreviewCV)
			cvGroup.PUT("/:id", cvHandler.UpdateCV)
			cvGroup.DELETE("/:id", cvHandler.DeleteCV)
			cvGroup.POST("/:id/export", cvHandler.ExportCV)
			cvGroup.GET("/:id/download-link", cvHandler.GetDownloadLink)
		}

		portfolioGroup := v1.Group("/portfolio")
		portfolioGroup.Use(authMiddleware)
		{
			portfolioGroup.POST("/publish", portfolioHandler.Publish)
		}

		assetGroup := v1.Group("/assets")
		assetGroup.Use(authMiddleware)
		{
			assetGroup.POST("/photo", assetHandler.UploadPhoto)
			assetGroup.GET("/photos", assetHandler.ListPhotos)
			assetGroup.GET("/view", assetHandler.GetPhotoURL)
		}

		v1.GET("/subscription", authMiddleware, subscriptionHandler.GetSubscription)

		internalGroup := v1.Group("/internal")
		internalGroup.Use(internalMiddleware)
		{
			internalGroup.PUT("/subscriptions/:userID", subscriptionHandler.SyncSubscription)
		}
	}
}
