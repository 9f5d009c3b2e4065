// Package preview renders composed drafts the way each platform will show them.
package preview

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// CharacterLimits is the maximum post length per platform, counted in runes.
var CharacterLimits = map[generation.Platform]int{
	generation.PlatformFacebook:  63206,
	generation.PlatformX:         280,
	generation.PlatformInstagram: 2200,
	generation.PlatformLinkedIn:  3000,
}

// Preview is the rendered form of one draft.
type Preview struct {
	Platform       generation.Platform `json:"platform"`
	HTML           string              `json:"html"`
	CharacterCount int                 `json:"characterCount"`
	CharacterLimit int                 `json:"characterLimit"`
	WithinLimit    bool                `json:"withinLimit"`
}

// Renderer converts markdown drafts into HTML previews.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a renderer with linkify and hard line breaks.
// Raw HTML in drafts is never passed through.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Render previews a single draft.
func (r *Renderer) Render(post generation.GeneratedPost) (*Preview, error) {
	limit, ok := CharacterLimits[post.Platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q", post.Platform)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(post.Content), &buf); err != nil {
		return nil, fmt.Errorf("render %s preview: %w", post.Platform, err)
	}

	count := utf8.RuneCountInString(post.Content)
	return &Preview{
		Platform:       post.Platform,
		HTML:           buf.String(),
		CharacterCount: count,
		CharacterLimit: limit,
		WithinLimit:    count <= limit,
	}, nil
}

// RenderAll previews drafts in order, stopping at the first failure.
func (r *Renderer) RenderAll(posts []generation.GeneratedPost) ([]Preview, error) {
	out := make([]Preview, 0, len(posts))
	for _, p := range posts {
		pv, err := r.Render(p)
		if err != nil {
			return nil, err
		}
		out = append(out, *pv)
	}
	return out, nil
}
