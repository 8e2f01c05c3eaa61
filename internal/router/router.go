package router

import (
	"log"

	"github.com/instashare-app/backend/internal/handlers"
	"github.com/instashare-app/backend/internal/jobs"
	"github.com/instashare-app/backend/internal/mailer"
	"github.com/instashare-app/backend/internal/middleware"
	"github.com/instashare-app/backend/internal/models"
	"github.com/instashare-app/backend/internal/repositories"
	"github.com/instashare-app/backend/internal/services"
	"github.com/instashare-app/backend/internal/storage"
	"github.com/instashare-app/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes, injects dependencies and
// returns the cron manager holding the scheduled maintenance jobs.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) (*jobs.Manager, error) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Reel{},
		&models.Story{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
	)
	if err != nil {
		return nil, err
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded media is served straight from disk
	e.Static(cfg.StaticPath, cfg.UploadDir)

	// --- Initialize infrastructure ---
	mediaStore, err := storage.NewLocalStore(cfg.UploadDir, cfg.StaticPath)
	if err != nil {
		return nil, err
	}
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	reelRepo := repositories.NewPostgresReelRepository(db)
	storyRepo := repositories.NewPostgresStoryRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, mail, cfg.JWTSecret, cfg.TokenTTL, cfg.FrontendURL)
	userService := services.NewUserService(userRepo, followRepo, mediaStore)
	followService := services.NewFollowService(db, followRepo, userRepo, notificationRepo)
	contentService := services.NewContentService(db, postRepo, reelRepo, mediaStore)
	engagementService := services.NewEngagementService(db, postRepo, reelRepo, commentRepo, likeRepo, userRepo, notificationRepo)
	feedService := services.NewFeedService(postRepo, reelRepo, userRepo, followRepo, likeRepo)
	storyService := services.NewStoryService(storyRepo, followRepo, mediaStore)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, postRepo, reelRepo, commentRepo)

	// --- Unprotected routes for authentication ---
	public := e.Group("/api/v1")
	authHandler := handlers.NewAuthHandler(authService)
	authHandler.RegisterAuthRoutes(public)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userService, feedService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	postHandler := handlers.NewPostHandler(contentService, feedService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	reelHandler := handlers.NewReelHandler(contentService, feedService)
	reelHandler.RegisterReelRoutes(api)
	log.Println("Reel routes configured.")

	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	commentHandler := handlers.NewCommentHandler(engagementService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	likeHandler := handlers.NewLikeHandler(engagementService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	storyHandler := handlers.NewStoryHandler(storyService)
	storyHandler.RegisterStoryRoutes(api)
	log.Println("Story routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// --- Admin routes ---
	admin := e.Group("/api/v1")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnly())
	userHandler.RegisterAdminRoutes(admin)
	adminHandler := handlers.NewAdminHandler(engagementService, storyService)
	adminHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")

	// --- Scheduled jobs ---
	manager := jobs.NewManager(
		jobs.NewStorySweepJob(storyService),
		jobs.NewRecountJob(engagementService),
		cfg.StorySweepSpec,
		cfg.RecountSpec,
	)
	return manager, nil
}
