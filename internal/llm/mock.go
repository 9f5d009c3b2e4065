package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anonto42/postcraft/backend/internal/generation"
)

// Mock answers locally without calling a provider, for development and demos
type Mock struct{}

// Generate builds a schema-conforming answer from the request input
func (Mock) Generate(_ context.Context, req generation.ModelRequest) (string, error) {
	var out any
	switch in := req.Input.(type) {
	case generation.GenerationRequest:
		posts := make([]generation.GeneratedPost, 0, len(in.Platforms))
		for _, p := range in.Platforms {
			posts = append(posts, generation.GeneratedPost{
				Platform: p,
				Content:  fmt.Sprintf("A few thoughts on %s for our %s followers.", strings.Join(in.Topics, ", "), p),
			})
		}
		out = generation.GenerationResult{Posts: posts}
	case generation.RegenerationRequest:
		text := in.OriginalPost
		if in.UserEdits != "" {
			text = fmt.Sprintf("%s (revised: %s)", in.OriginalPost, in.UserEdits)
		}
		out = generation.RegenerationResult{RegeneratedPost: text}
	default:
		return "", fmt.Errorf("mock: unsupported task %q", req.Task)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
