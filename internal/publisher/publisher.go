// Package publisher hands reviewed drafts to platform publishers.
package publisher

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/anonto42/postcraft/backend/internal/preview"
	"github.com/google/uuid"
)

// Submission is one draft bound for one platform.
type Submission struct {
	PostID   string
	UserID   uint
	Platform generation.Platform
	Content  string
	ImageURI string
}

// Publisher delivers a submission and returns the platform's id for it.
type Publisher interface {
	Publish(ctx context.Context, sub Submission) (string, error)
}

// Entry is a submission accepted by the LocalPublisher.
type Entry struct {
	ExternalID  string
	Submission  Submission
	PublishedAt time.Time
}

// LocalPublisher records submissions in memory instead of calling a social network.
type LocalPublisher struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewLocalPublisher() *LocalPublisher {
	return &LocalPublisher{}
}

// Publish rejects content longer than the platform allows.
func (p *LocalPublisher) Publish(ctx context.Context, sub Submission) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	limit, ok := preview.CharacterLimits[sub.Platform]
	if !ok {
		return "", fmt.Errorf("unsupported platform %q", sub.Platform)
	}
	if n := utf8.RuneCountInString(sub.Content); n > limit {
		return "", fmt.Errorf("%s posts are limited to %d characters, got %d", sub.Platform, limit, n)
	}

	id := uuid.NewString()
	p.mu.Lock()
	p.entries = append(p.entries, Entry{ExternalID: id, Submission: sub, PublishedAt: time.Now()})
	p.mu.Unlock()
	return id, nil
}

// Entries returns a snapshot of everything published so far.
func (p *LocalPublisher) Entries() []Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}
