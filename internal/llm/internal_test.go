package llm

import (
	"testing"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGenAISchema_ConvertsPostsSchema(t *testing.T) {
	s := toGenAISchema(generation.PostsSchema())

	require.NotNil(t, s)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"posts"}, s.Required)

	posts := s.Properties["posts"]
	require.NotNil(t, posts)
	assert.Equal(t, genai.TypeArray, posts.Type)
	require.NotNil(t, posts.Items)
	assert.Equal(t, []string{"Facebook", "X", "Instagram", "LinkedIn"}, posts.Items.Properties["platform"].Enum)
	assert.Equal(t, genai.TypeString, posts.Items.Properties["content"].Type)
}

func TestToGenAISchema_Nil(t *testing.T) {
	assert.Nil(t, toGenAISchema(nil))
}

func TestBuildMessages_TextOnly(t *testing.T) {
	msgs, err := buildMessages(generation.ModelRequest{
		Prompt: "write a post",
		Schema: generation.RegeneratedPostSchema(),
	})

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.NotNil(t, msgs[0].OfSystem)
	assert.Contains(t, msgs[0].OfSystem.Content.OfString.Value, `"regeneratedPost"`)
	require.NotNil(t, msgs[1].OfUser)
	assert.Equal(t, "write a post", msgs[1].OfUser.Content.OfString.Value)
}

func TestBuildMessages_WithImage(t *testing.T) {
	msgs, err := buildMessages(generation.ModelRequest{
		Prompt: "describe",
		Image:  &generation.InlineImage{MIMEType: "image/png", Data: []byte("hello")},
	})

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.NotNil(t, msgs[1].OfUser)
	assert.Len(t, msgs[1].OfUser.Content.OfArrayOfContentParts, 2)
}
