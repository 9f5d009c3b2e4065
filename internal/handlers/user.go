package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/anonto42/postcraft/backend/internal/models"
	"github.com/anonto42/postcraft/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserHandler handles the authenticated user's profile and composer preferences
type UserHandler struct {
	userRepository       repositories.UserRepository
	preferenceRepository repositories.PreferenceRepository
	logger               *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, prefRepo repositories.PreferenceRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{userRepository: userRepo, preferenceRepository: prefRepo, logger: logger}
}

// RegisterProfileRoutes registers profile and preference routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.GET("/preferences", h.GetPreferences)
	g.PUT("/preferences", h.UpdatePreferences)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// GetPreferences returns the stored preferences, or the defaults when none were saved
func (h *UserHandler) GetPreferences(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	pref, err := loadPreference(h.preferenceRepository, userID)
	if err != nil {
		h.logger.Error("load preferences", zap.Uint("user_id", userID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load preferences")
	}
	return c.JSON(http.StatusOK, pref)
}

// UpdatePreferences replaces the user's topics and platforms
func (h *UserHandler) UpdatePreferences(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdatePreferenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pref := &models.Preference{
		UserID:    userID,
		Topics:    req.Topics,
		Platforms: req.Platforms,
		UpdatedAt: time.Now(),
	}
	if err := h.preferenceRepository.Save(pref); err != nil {
		h.logger.Error("save preferences", zap.Uint("user_id", userID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save preferences")
	}
	return c.JSON(http.StatusOK, pref)
}

func loadPreference(repo repositories.PreferenceRepository, userID uint) (*models.Preference, error) {
	pref, err := repo.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultPreference(userID), nil
	}
	return pref, err
}
