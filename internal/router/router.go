package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/nkiselev/microfeed/backend/internal/handlers"
	"github.com/nkiselev/microfeed/backend/internal/middleware"
	"github.com/nkiselev/microfeed/backend/internal/models"
	"github.com/nkiselev/microfeed/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, pageSize int) {
	// AutoMigrate PostgreSQL models. Cascade rules live in the FK
	// constraints, the unique follow pair in its composite index.
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	mediaRepo := repositories.NewMongoMediaRepository(mgClient.Database("microfeed"))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public read routes (identity honored when present) ---
	public := e.Group("")
	public.Use(middleware.OptionalJWTAuthMiddleware())

	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, groupRepo, followRepo, pageSize)
	feedHandler.RegisterPublicFeedRoutes(public)

	groupHandler := handlers.NewGroupHandler(groupRepo)
	groupHandler.RegisterPublicGroupRoutes(public)

	postHandler := handlers.NewPostHandler(postRepo, userRepo, groupRepo, commentRepo)
	postHandler.RegisterPublicPostRoutes(public)

	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	userHandler.RegisterPublicUserRoutes(public)

	mediaHandler := handlers.NewMediaHandler(mediaRepo)
	mediaHandler.RegisterPublicMediaRoutes(public)
	log.Println("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	feedHandler.RegisterProtectedFeedRoutes(api)
	postHandler.RegisterProtectedPostRoutes(api)
	groupHandler.RegisterProtectedGroupRoutes(api)
	mediaHandler.RegisterProtectedMediaRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo)
	commentHandler.RegisterCommentRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Println("All routes configured.")
}
