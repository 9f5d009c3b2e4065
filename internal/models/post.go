package models

import (
	"time"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostStatusPending   = "pending"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

// Post represents a composed post submitted for publishing, stored in MongoDB
type Post struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     uint                `json:"user_id" bson:"user_id"`
	Topic      string              `json:"topic" bson:"topic"`
	Platform   generation.Platform `json:"platform" bson:"platform"`
	Content    string              `json:"content" bson:"content"`
	ImageURI   string              `json:"image_uri,omitempty" bson:"image_uri,omitempty"`
	Status     string              `json:"status" bson:"status"`
	ExternalID string              `json:"external_id,omitempty" bson:"external_id,omitempty"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

// DraftPost is a platform-tagged draft as the composer sends it
type DraftPost struct {
	Platform generation.Platform `json:"platform" validate:"required,oneof=Facebook X Instagram LinkedIn"`
	Content  string              `json:"content" validate:"required"`
}

// PublishRequest defines the request body for publishing reviewed drafts
type PublishRequest struct {
	Topic    string      `json:"topic" validate:"required"`
	Posts    []DraftPost `json:"posts" validate:"required,min=1,dive"`
	ImageURI string      `json:"imageUri,omitempty" validate:"omitempty,datauri"`
}

// PublishOutcome reports what happened to one platform's post
type PublishOutcome struct {
	PostID     string              `json:"postId"`
	Platform   generation.Platform `json:"platform"`
	Status     string              `json:"status"`
	ExternalID string              `json:"externalId,omitempty"`
	Error      string              `json:"error,omitempty"`
}
