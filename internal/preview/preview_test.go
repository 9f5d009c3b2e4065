package preview

import (
	"strings"
	"testing"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Markdown(t *testing.T) {
	r := NewRenderer()

	pv, err := r.Render(generation.GeneratedPost{Platform: generation.PlatformLinkedIn, Content: "**Big** news\nsecond line"})
	require.NoError(t, err)

	assert.Contains(t, pv.HTML, "<strong>Big</strong>")
	assert.Contains(t, pv.HTML, "<br")
	assert.Equal(t, 3000, pv.CharacterLimit)
	assert.True(t, pv.WithinLimit)
}

func TestRender_RawHTMLIsNotPassedThrough(t *testing.T) {
	r := NewRenderer()

	pv, err := r.Render(generation.GeneratedPost{Platform: generation.PlatformFacebook, Content: "<script>alert(1)</script>"})
	require.NoError(t, err)

	assert.NotContains(t, pv.HTML, "<script>")
}

func TestRender_CountsRunes(t *testing.T) {
	r := NewRenderer()

	content := strings.Repeat("é", 280)
	pv, err := r.Render(generation.GeneratedPost{Platform: generation.PlatformX, Content: content})
	require.NoError(t, err)
	assert.Equal(t, 280, pv.CharacterCount)
	assert.True(t, pv.WithinLimit)

	pv, err = r.Render(generation.GeneratedPost{Platform: generation.PlatformX, Content: content + "!"})
	require.NoError(t, err)
	assert.Equal(t, 281, pv.CharacterCount)
	assert.False(t, pv.WithinLimit)
}

func TestRender_UnknownPlatform(t *testing.T) {
	_, err := NewRenderer().Render(generation.GeneratedPost{Platform: "MySpace", Content: "hi"})
	assert.Error(t, err)
}

func TestRenderAll_KeepsOrder(t *testing.T) {
	posts := []generation.GeneratedPost{
		{Platform: generation.PlatformInstagram, Content: "one"},
		{Platform: generation.PlatformX, Content: "two"},
	}

	out, err := NewRenderer().RenderAll(posts)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, generation.PlatformInstagram, out[0].Platform)
	assert.Equal(t, generation.PlatformX, out[1].Platform)
}
