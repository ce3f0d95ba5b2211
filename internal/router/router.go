package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/gallerystudio/backend/internal/handlers"
	"github.com/gallerystudio/backend/internal/middleware"
	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/notifications"
	"github.com/gallerystudio/backend/internal/realtime"
	"github.com/gallerystudio/backend/internal/repositories"
	"github.com/gallerystudio/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupMiddleware installs the global middleware stack
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
}

// SetupRoutes wires repositories, services and handlers and registers all
// routes. firebaseAuthClient may be nil when Firebase is not configured.
func SetupRoutes(e *echo.Echo, db *gorm.DB, rdb *redis.Client, firebaseAuthClient *auth.Client, objectStorage storage.ObjectStorage) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Showcase{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
		&models.Notification{},
		&models.Album{},
		&models.AlbumShowcase{},
	); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	showcaseRepo := repositories.NewPostgresShowcaseRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	albumRepo := repositories.NewPostgresAlbumRepository(db)

	var bridge *realtime.RedisBridge
	var publisher realtime.Publisher
	if rdb != nil {
		bridge = realtime.NewRedisBridge(rdb)
		publisher = bridge
	}
	fanout := notifications.New(notificationRepo, publisher)

	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	userHandler := handlers.NewUserHandler(userRepo, followRepo, fanout)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, fanout)
	showcaseHandler := handlers.NewShowcaseHandler(showcaseRepo, followRepo, userRepo, fanout, objectStorage)
	feedHandler := handlers.NewFeedHandler(showcaseRepo, followRepo, userRepo, likeRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo, showcaseRepo, commentRepo, userRepo, fanout)
	commentHandler := handlers.NewCommentHandler(commentRepo, showcaseRepo, userRepo, fanout)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, bridge)
	albumHandler := handlers.NewAlbumHandler(albumRepo, showcaseRepo)

	e.GET("/health", handlers.HealthCheck)

	authGroup := e.Group("/api/v1/auth")
	authHandler.RegisterAuthRoutes(authGroup)
	if firebaseAuthClient != nil {
		authGroup.POST("/firebase-login", authHandler.FirebaseLogin, middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	} else {
		// Without Firebase configured the handler answers 503
		authGroup.POST("/firebase-login", authHandler.FirebaseLogin)
	}

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	userHandler.RegisterProfileRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	showcaseHandler.RegisterShowcaseRoutes(api)
	feedHandler.RegisterFeedRoutes(api)
	likeHandler.RegisterLikeRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)
	albumHandler.RegisterAlbumRoutes(api)
}
