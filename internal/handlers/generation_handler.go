package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/anonto42/postcraft/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContentGenerator runs the two LLM flows; *generation.Service satisfies it
type ContentGenerator interface {
	GenerateInitialPosts(ctx context.Context, req generation.GenerationRequest) (*generation.GenerationResult, error)
	RegeneratePostWithEdits(ctx context.Context, req generation.RegenerationRequest) (*generation.RegenerationResult, error)
}

const aiUnavailableMessage = "The AI service may be temporarily unavailable. Please try again."

// GenerationHandler exposes post generation and regeneration
type GenerationHandler struct {
	generator            ContentGenerator
	preferenceRepository repositories.PreferenceRepository
	timeout              time.Duration
	logger               *zap.Logger
}

// NewGenerationHandler creates a new GenerationHandler; timeout bounds each model call
func NewGenerationHandler(generator ContentGenerator, prefRepo repositories.PreferenceRepository, timeout time.Duration, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{
		generator:            generator,
		preferenceRepository: prefRepo,
		timeout:              timeout,
		logger:               logger,
	}
}

// RegisterGenerationRoutes registers the generation routes behind the given middleware (rate limiting)
func (h *GenerationHandler) RegisterGenerationRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/generate", h.Generate, m...)
	g.POST("/regenerate", h.Regenerate, m...)
}

// generateRequest leaves fields nil when absent so stored preferences can fill them
type generateRequest struct {
	Topics    []string              `json:"topics"`
	Platforms []generation.Platform `json:"platforms"`
}

// regenerateRequest uses pointers so a missing field can be told apart from an empty one
type regenerateRequest struct {
	OriginalPost *string `json:"originalPost" validate:"required"`
	UserEdits    *string `json:"userEdits" validate:"required"`
	Topic        *string `json:"topic" validate:"required"`
	Platform     *string `json:"platform" validate:"required"`
	ImageURI     string  `json:"imageUri,omitempty"`
}

// Generate produces one draft per platform for the requested topics
func (h *GenerationHandler) Generate(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var body generateRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	req := generation.GenerationRequest{Topics: body.Topics, Platforms: body.Platforms}
	if req.Topics == nil || req.Platforms == nil {
		pref, err := loadPreference(h.preferenceRepository, userID)
		if err != nil {
			h.logger.Error("load preferences", zap.Uint("user_id", userID), zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load preferences")
		}
		if req.Topics == nil {
			req.Topics = pref.Topics
		}
		if req.Platforms == nil {
			req.Platforms = pref.Platforms
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.generator.GenerateInitialPosts(ctx, req)
	if err != nil {
		return h.generationError(err, userID)
	}
	return c.JSON(http.StatusOK, result)
}

// Regenerate rewrites one draft following the user's edits
func (h *GenerationHandler) Regenerate(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var body regenerateRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "originalPost, userEdits, topic and platform are required")
	}

	req := generation.RegenerationRequest{
		OriginalPost: *body.OriginalPost,
		UserEdits:    *body.UserEdits,
		Topic:        *body.Topic,
		Platform:     *body.Platform,
		ImageURI:     body.ImageURI,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.generator.RegeneratePostWithEdits(ctx, req)
	if err != nil {
		return h.generationError(err, userID)
	}
	return c.JSON(http.StatusOK, result)
}

// generationError maps flow errors to HTTP errors. Model and schema failures get a neutral message;
// the cause is only logged.
func (h *GenerationHandler) generationError(err error, userID uint) error {
	var (
		inputErr  *generation.InputValidationError
		modelErr  *generation.ModelInvocationError
		schemaErr *generation.SchemaValidationError
	)
	switch {
	case errors.As(err, &inputErr):
		return echo.NewHTTPError(http.StatusBadRequest, inputErr.Error())
	case errors.As(err, &schemaErr):
		h.logger.Error("model output rejected",
			zap.Uint("user_id", userID),
			zap.String("raw", schemaErr.Raw),
			zap.Error(schemaErr.Err))
		return echo.NewHTTPError(http.StatusBadGateway, aiUnavailableMessage)
	case errors.As(err, &modelErr):
		h.logger.Error("model call failed", zap.Uint("user_id", userID), zap.Error(modelErr.Err))
		if errors.Is(err, context.DeadlineExceeded) {
			return echo.NewHTTPError(http.StatusGatewayTimeout, aiUnavailableMessage)
		}
		return echo.NewHTTPError(http.StatusBadGateway, aiUnavailableMessage)
	default:
		h.logger.Error("generation failed", zap.Uint("user_id", userID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, aiUnavailableMessage)
	}
}
