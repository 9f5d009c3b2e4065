package models

import (
	"time"

	"github.com/anonto42/postcraft/backend/internal/generation"
)

// Preference stores the topics and platforms a user composes for (PostgreSQL)
type Preference struct {
	ID        uint                  `json:"-" gorm:"primaryKey"`
	UserID    uint                  `json:"user_id" gorm:"uniqueIndex"`
	Topics    []string              `json:"topics" gorm:"serializer:json"`
	Platforms []generation.Platform `json:"platforms" gorm:"serializer:json"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// DefaultPreference is used until the user saves their own
func DefaultPreference(userID uint) *Preference {
	platforms := make([]generation.Platform, len(generation.AllPlatforms))
	copy(platforms, generation.AllPlatforms)
	return &Preference{
		UserID:    userID,
		Topics:    []string{},
		Platforms: platforms,
	}
}

// UpdatePreferenceRequest defines the request body for saving preferences
type UpdatePreferenceRequest struct {
	Topics    []string              `json:"topics" validate:"required,min=1,dive,required,max=100"`
	Platforms []generation.Platform `json:"platforms" validate:"required,min=1,dive,oneof=Facebook X Instagram LinkedIn"`
}
