package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/anonto42/postcraft/backend/internal/models"
	"github.com/anonto42/postcraft/backend/internal/publisher"
	"github.com/anonto42/postcraft/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Dispatcher publishes submissions; *publisher.Dispatcher satisfies it
type Dispatcher interface {
	PublishAll(ctx context.Context, subs []publisher.Submission) []publisher.Result
}

// PostHandler handles publishing and the post history
type PostHandler struct {
	postRepository        repositories.PostRepository
	publicationRepository repositories.PublicationRepository
	dispatcher            Dispatcher
	logger                *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, pubRepo repositories.PublicationRepository, dispatcher Dispatcher, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postRepository:        postRepo,
		publicationRepository: pubRepo,
		dispatcher:            dispatcher,
		logger:                logger,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts/publish", h.PublishPosts)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// PublishPosts stores each draft, publishes them concurrently and records the outcomes
func (h *PostHandler) PublishPosts(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.PublishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	subs := make([]publisher.Submission, 0, len(req.Posts))
	for _, draft := range req.Posts {
		post := &models.Post{
			UserID:   userID,
			Topic:    req.Topic,
			Platform: draft.Platform,
			Content:  draft.Content,
			ImageURI: req.ImageURI,
			Status:   models.PostStatusPending,
		}
		if err := h.postRepository.CreatePost(ctx, post); err != nil {
			h.logger.Error("store post", zap.Uint("user_id", userID), zap.Error(err))
			h.discardStored(ctx, subs)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store post")
		}
		subs = append(subs, publisher.Submission{
			PostID:   post.ID.Hex(),
			UserID:   userID,
			Platform: draft.Platform,
			Content:  draft.Content,
			ImageURI: req.ImageURI,
		})
	}

	results := h.dispatcher.PublishAll(ctx, subs)

	outcomes := make([]models.PublishOutcome, 0, len(results))
	for _, res := range results {
		outcomes = append(outcomes, h.recordOutcome(ctx, userID, res))
	}

	return c.JSON(http.StatusOK, echo.Map{"results": outcomes})
}

// discardStored removes drafts stored earlier in a publish request that could not be completed,
// so none of them is left pending
func (h *PostHandler) discardStored(ctx context.Context, subs []publisher.Submission) {
	for _, sub := range subs {
		if err := h.postRepository.DeletePost(ctx, sub.PostID); err != nil {
			h.logger.Error("discard stored post", zap.String("post_id", sub.PostID), zap.Error(err))
		}
	}
}

// recordOutcome writes the analytics row and the post status; storage failures are logged, not returned
func (h *PostHandler) recordOutcome(ctx context.Context, userID uint, res publisher.Result) models.PublishOutcome {
	outcome := models.PublishOutcome{
		PostID:     res.Submission.PostID,
		Platform:   res.Submission.Platform,
		Status:     models.PostStatusPublished,
		ExternalID: res.ExternalID,
	}
	if res.Err != nil {
		outcome.Status = models.PostStatusFailed
		outcome.Error = res.Err.Error()
	}

	record := &models.PublishRecord{
		UserID:     userID,
		PostID:     outcome.PostID,
		Platform:   string(outcome.Platform),
		Status:     outcome.Status,
		ExternalID: outcome.ExternalID,
		Error:      outcome.Error,
	}
	if err := h.publicationRepository.CreateRecord(ctx, record); err != nil {
		h.logger.Error("store publish record", zap.String("post_id", outcome.PostID), zap.Error(err))
	}
	if err := h.postRepository.UpdateStatus(ctx, outcome.PostID, outcome.Status, outcome.ExternalID); err != nil {
		h.logger.Error("update post status", zap.String("post_id", outcome.PostID), zap.Error(err))
	}
	return outcome
}

// GetPosts lists the caller's posts, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	platform := c.QueryParam("platform")
	if platform != "" && !generation.Platform(platform).IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown platform")
	}

	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	posts, err := h.postRepository.GetPostsByUserID(c.Request().Context(), userID, platform, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves one of the caller's posts
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.ownedPost(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes one of the caller's posts
func (h *PostHandler) DeletePost(c echo.Context) error {
	post, err := h.ownedPost(c)
	if err != nil {
		return err
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), post.ID.Hex()); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) ownedPost(c echo.Context) (*models.Post, error) {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidPostID):
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
		case errors.Is(err, repositories.ErrPostNotFound):
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		default:
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if post.UserID != userID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "You are not authorized to access this post")
	}
	return post, nil
}
