package generation_test

import (
	"testing"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRenderInitialPrompt_ListsPlatformsAndTopics(t *testing.T) {
	got := generation.RenderInitialPrompt(generation.GenerationRequest{
		Topics:    []string{"Technology", "Startups"},
		Platforms: []generation.Platform{generation.PlatformFacebook, generation.PlatformX},
	})

	want := "You are an experienced social media copywriter.\n" +
		"Write one post for each of these platforms: Facebook, X.\n" +
		"The posts should be about: Technology, Startups.\n" +
		"Match each platform's tone, length and conventions, for example hashtags where they fit and X posts within 280 characters.\n" +
		`Return a JSON object with a "posts" array. Each element must have a "platform" field set to one of the platform names above and a "content" field with the post text.`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderInitialPrompt_IsDeterministic(t *testing.T) {
	req := generation.GenerationRequest{
		Topics:    []string{"Food"},
		Platforms: []generation.Platform{generation.PlatformInstagram},
	}
	assert.Equal(t, generation.RenderInitialPrompt(req), generation.RenderInitialPrompt(req))
}

func TestRenderRegenerationPrompt_InlinesFields(t *testing.T) {
	got := generation.RenderRegenerationPrompt(generation.RegenerationRequest{
		OriginalPost: "Check out our new product!",
		UserEdits:    "Make it more casual",
		Topic:        "Technology",
		Platform:     "Facebook",
	})

	assert.Contains(t, got, "Platform: Facebook\n")
	assert.Contains(t, got, "Topic: Technology\n")
	assert.Contains(t, got, "Original post:\nCheck out our new product!\n")
	assert.Contains(t, got, "Requested edits:\nMake it more casual\n")
	assert.NotContains(t, got, "attached an image")
	assert.Contains(t, got, `"regeneratedPost"`)
}

func TestRenderRegenerationPrompt_MentionsImageOnlyWhenPresent(t *testing.T) {
	req := generation.RegenerationRequest{
		OriginalPost: "draft",
		Topic:        "Travel",
		Platform:     "Instagram",
		ImageURI:     "data:image/jpeg;base64,/9j/4AAQ",
	}

	got := generation.RenderRegenerationPrompt(req)

	assert.Contains(t, got, "The user attached an image.")
	assert.NotContains(t, got, req.ImageURI)
}
