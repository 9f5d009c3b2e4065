package handlers

import (
	"net/http"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/anonto42/postcraft/backend/internal/preview"
	"github.com/labstack/echo/v4"
)

// PreviewHandler renders drafts per platform
type PreviewHandler struct {
	renderer *preview.Renderer
}

func NewPreviewHandler(renderer *preview.Renderer) *PreviewHandler {
	return &PreviewHandler{renderer: renderer}
}

func (h *PreviewHandler) RegisterPreviewRoutes(g *echo.Group) {
	g.POST("/preview", h.Preview)
}

type previewRequest struct {
	Posts []generation.GeneratedPost `json:"posts" validate:"required,min=1,dive"`
}

// Preview returns the rendered HTML and character budget of each draft
func (h *PreviewHandler) Preview(c echo.Context) error {
	var req previewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	previews, err := h.renderer.RenderAll(req.Posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"previews": previews})
}
