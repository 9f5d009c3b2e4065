package llm_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/anonto42/postcraft/backend/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenAI_FailedCallIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	model, err := llm.New(context.Background(), llm.Settings{
		Provider: "openai",
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
		BaseURL:  srv.URL,
	})
	require.NoError(t, err)

	svc, err := generation.NewService(model, zap.NewNop())
	require.NoError(t, err)

	_, err = svc.GenerateInitialPosts(context.Background(), generation.GenerationRequest{
		Topics:    []string{"Technology"},
		Platforms: []generation.Platform{generation.PlatformX},
	})

	var modelErr *generation.ModelInvocationError
	assert.True(t, errors.As(err, &modelErr))
	assert.EqualValues(t, 1, hits.Load())
}

func TestOpenAI_ReturnsFirstChoice(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop",
				"message":{"role":"assistant","content":"{\"regeneratedPost\":\"Shorter now\"}"}}]
		}`))
	}))
	defer srv.Close()

	model, err := llm.New(context.Background(), llm.Settings{
		Provider: "openai",
		APIKey:   "sk-test",
		Model:    "gpt-4o-mini",
		BaseURL:  srv.URL,
	})
	require.NoError(t, err)

	svc, err := generation.NewService(model, zap.NewNop())
	require.NoError(t, err)

	res, err := svc.RegeneratePostWithEdits(context.Background(), generation.RegenerationRequest{
		OriginalPost: "A long post",
		UserEdits:    "shorter",
		Topic:        "Technology",
		Platform:     "X",
	})
	require.NoError(t, err)
	assert.Equal(t, "Shorter now", res.RegeneratedPost)
	assert.EqualValues(t, 1, hits.Load())
}
