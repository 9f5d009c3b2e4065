package generation

import (
	"fmt"
	"strings"
)

// RenderInitialPrompt builds the instruction for the initial generation flow
func RenderInitialPrompt(req GenerationRequest) string {
	platforms := make([]string, len(req.Platforms))
	for i, p := range req.Platforms {
		platforms[i] = string(p)
	}

	var sb strings.Builder
	sb.WriteString("You are an experienced social media copywriter.\n")
	sb.WriteString(fmt.Sprintf("Write one post for each of these platforms: %s.\n", strings.Join(platforms, ", ")))
	sb.WriteString(fmt.Sprintf("The posts should be about: %s.\n", strings.Join(req.Topics, ", ")))
	sb.WriteString("Match each platform's tone, length and conventions, for example hashtags where they fit and X posts within 280 characters.\n")
	sb.WriteString(`Return a JSON object with a "posts" array. Each element must have a "platform" field set to one of the platform names above and a "content" field with the post text.`)
	return sb.String()
}

// RenderRegenerationPrompt builds the instruction for the edit-driven regeneration flow
func RenderRegenerationPrompt(req RegenerationRequest) string {
	var sb strings.Builder
	sb.WriteString("You are an experienced social media copywriter revising a draft.\n")
	sb.WriteString(fmt.Sprintf("Platform: %s\n", req.Platform))
	sb.WriteString(fmt.Sprintf("Topic: %s\n", req.Topic))
	sb.WriteString(fmt.Sprintf("Original post:\n%s\n", req.OriginalPost))
	sb.WriteString(fmt.Sprintf("Requested edits:\n%s\n", req.UserEdits))
	if req.ImageURI != "" {
		sb.WriteString("The user attached an image. Use it as additional context for the revised post.\n")
	}
	sb.WriteString("Rewrite the post applying the requested edits while keeping it suitable for the platform.\n")
	sb.WriteString(`Return a JSON object with a single "regeneratedPost" field containing the revised post text.`)
	return sb.String()
}
