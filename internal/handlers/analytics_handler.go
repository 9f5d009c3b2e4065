package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/anonto42/postcraft/backend/internal/models"
	"github.com/anonto42/postcraft/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler reports publish outcomes per platform
type AnalyticsHandler struct {
	publicationRepository repositories.PublicationRepository
}

func NewAnalyticsHandler(pubRepo repositories.PublicationRepository) *AnalyticsHandler {
	return &AnalyticsHandler{publicationRepository: pubRepo}
}

func (h *AnalyticsHandler) RegisterAnalyticsRoutes(g *echo.Group) {
	g.GET("/analytics/summary", h.GetSummary)
	g.GET("/analytics/records", h.GetRecords)
}

// GetSummary returns published/failed totals for every platform
func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	counts, err := h.publicationRepository.CountByPlatformAndStatus(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    SummarizeByPlatform(counts),
	})
}

// GetRecords returns paginated publish records
func (h *AnalyticsHandler) GetRecords(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	platform := c.QueryParam("platform")
	if platform != "" && !generation.Platform(platform).IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown platform")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	records, total, err := h.publicationRepository.GetByUserID(c.Request().Context(), userID, platform, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"records": records,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

// SummarizeByPlatform folds grouped counts into one row per known platform, in display order
func SummarizeByPlatform(counts []models.PlatformStatusCount) []models.PlatformSummary {
	index := make(map[string]int, len(generation.AllPlatforms))
	summary := make([]models.PlatformSummary, len(generation.AllPlatforms))
	for i, p := range generation.AllPlatforms {
		summary[i].Platform = string(p)
		index[string(p)] = i
	}

	for _, c := range counts {
		i, ok := index[c.Platform]
		if !ok {
			continue
		}
		switch c.Status {
		case models.PostStatusPublished:
			summary[i].Published += c.Count
		case models.PostStatusFailed:
			summary[i].Failed += c.Count
		}
		summary[i].Total += c.Count
	}
	return summary
}
