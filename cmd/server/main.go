package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/anonto42/postcraft/backend/internal/handlers"
	"github.com/anonto42/postcraft/backend/internal/llm"
	"github.com/anonto42/postcraft/backend/internal/middleware"
	"github.com/anonto42/postcraft/backend/internal/publisher"
	"github.com/anonto42/postcraft/backend/internal/router"
	"github.com/anonto42/postcraft/backend/pkg/config"
	"github.com/anonto42/postcraft/backend/pkg/firebase"
	"github.com/anonto42/postcraft/backend/validators"
	"github.com/labstack/echo/v4"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		// Fatal would exit before the deferred Sync flushes buffered entries
		logger.Error("server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		return err
	}

	// Firebase login is optional; local accounts keep working without it
	var verifier handlers.TokenVerifier
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, logger)
	if err != nil {
		logger.Warn("firebase login disabled", zap.Error(err))
	} else {
		verifier = firebaseApp.AuthClient
	}

	model, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	service, err := generation.NewService(llm.WithLogging(model, cfg.LLM.Provider, logger), logger.Named("generation"))
	if err != nil {
		return err
	}

	limiter := middleware.NewGenerationRateLimiter(cfg.GenerationRatePerMinute)
	go limiter.Run(ctx)

	dispatcher := publisher.NewDispatcher(publisher.NewLocalPublisher(), logger.Named("publisher"))

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, logger)
	router.SetupRoutes(e, router.Deps{
		Postgres:      db.Postgres,
		Mongo:         db.Mongo.Database(cfg.MongoDatabase),
		FirebaseAuth:  verifier,
		Generator:     service,
		Dispatcher:    dispatcher,
		JWTSecret:     cfg.JWTSecret,
		LLMTimeout:    cfg.LLMTimeout(),
		RateLimiter:   limiter,
		Logger:        logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("llm_provider", cfg.LLM.Provider))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
