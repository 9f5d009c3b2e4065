package router

import (
	"fmt"
	"time"

	"github.com/anonto42/postcraft/backend/internal/handlers"
	"github.com/anonto42/postcraft/backend/internal/middleware"
	"github.com/anonto42/postcraft/backend/internal/models"
	"github.com/anonto42/postcraft/backend/internal/preview"
	"github.com/anonto42/postcraft/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators the routes are wired with
type Deps struct {
	Postgres      *gorm.DB
	Mongo         *mongo.Database
	FirebaseAuth  handlers.TokenVerifier
	Generator     handlers.ContentGenerator
	Dispatcher    handlers.Dispatcher
	JWTSecret     string
	LLMTimeout    time.Duration
	RateLimiter   *middleware.GenerationRateLimiter
	Logger        *zap.Logger
}

// Migrate creates or updates the PostgreSQL tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Preference{},
		&models.PublishRecord{},
	); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	return nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) {
	logger := deps.Logger

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	prefRepo := repositories.NewPostgresPreferenceRepository(deps.Postgres)
	pubRepo := repositories.NewPostgresPublicationRepository(deps.Postgres)
	postRepo := repositories.NewMongoPostRepository(deps.Mongo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(userRepo, deps.FirebaseAuth, deps.JWTSecret, logger).RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(deps.JWTSecret))

	handlers.NewUserHandler(userRepo, prefRepo, logger).RegisterProfileRoutes(api)

	handlers.NewGenerationHandler(deps.Generator, prefRepo, deps.LLMTimeout, logger).
		RegisterGenerationRoutes(api, deps.RateLimiter.Middleware())

	handlers.NewPreviewHandler(preview.NewRenderer()).RegisterPreviewRoutes(api)
	handlers.NewPostHandler(postRepo, pubRepo, deps.Dispatcher, logger).RegisterPostRoutes(api)
	handlers.NewAnalyticsHandler(pubRepo).RegisterAnalyticsRoutes(api)

	logger.Info("routes configured", zap.Int("count", len(e.Routes())))
}
