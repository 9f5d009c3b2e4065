package models

import "time"

// PublishRecord is one publish attempt for one platform (PostgreSQL), the source for analytics
type PublishRecord struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index"`
	PostID     string    `json:"post_id" gorm:"index"` // MongoDB ObjectID as hex
	Platform   string    `json:"platform" gorm:"size:20;index"`
	Status     string    `json:"status" gorm:"size:20;index"` // published, failed
	ExternalID string    `json:"external_id,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// PlatformStatusCount is a grouped count of publish records
type PlatformStatusCount struct {
	Platform string
	Status   string
	Count    int64
}

// PlatformSummary is the analytics view of one platform
type PlatformSummary struct {
	Platform  string `json:"platform"`
	Published int64  `json:"published"`
	Failed    int64  `json:"failed"`
	Total     int64  `json:"total"`
}
