package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"github.com/anonto42/postcraft/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newGenerationHandler(gen ContentGenerator, prefs *fakePreferenceRepo) *GenerationHandler {
	return NewGenerationHandler(gen, prefs, time.Minute, zap.NewNop())
}

func TestGenerate_UsesRequestFields(t *testing.T) {
	gen := &fakeGenerator{genResult: &generation.GenerationResult{Posts: []generation.GeneratedPost{
		{Platform: generation.PlatformX, Content: "ship it"},
	}}}
	h := newGenerationHandler(gen, newFakePreferenceRepo())

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/generate", `{"topics":["release"],"platforms":["X"]}`, testUserID)
	require.NoError(t, h.Generate(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"posts":[{"platform":"X","content":"ship it"}]}`, rec.Body.String())
	assert.Equal(t, []string{"release"}, gen.genReq.Topics)
	assert.Equal(t, []generation.Platform{generation.PlatformX}, gen.genReq.Platforms)
	assert.True(t, gen.deadline)
}

func TestGenerate_FallsBackToPreferences(t *testing.T) {
	prefs := newFakePreferenceRepo()
	prefs.prefs[testUserID] = &models.Preference{
		UserID:    testUserID,
		Topics:    []string{"golang"},
		Platforms: []generation.Platform{generation.PlatformLinkedIn},
	}
	gen := &fakeGenerator{genResult: &generation.GenerationResult{Posts: []generation.GeneratedPost{}}}
	h := newGenerationHandler(gen, prefs)

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/generate", `{}`, testUserID)
	require.NoError(t, h.Generate(c))
	assert.Equal(t, []string{"golang"}, gen.genReq.Topics)
	assert.Equal(t, []generation.Platform{generation.PlatformLinkedIn}, gen.genReq.Platforms)

	c, _ = newTestContext(t, http.MethodPost, "/api/v1/generate", `{"platforms":[]}`, testUserID)
	require.NoError(t, h.Generate(c))
	assert.Equal(t, []string{"golang"}, gen.genReq.Topics)
	assert.NotNil(t, gen.genReq.Platforms)
	assert.Empty(t, gen.genReq.Platforms)
}

func TestGenerate_DefaultPreferencesHaveNoTopics(t *testing.T) {
	gen := &fakeGenerator{}
	h := newGenerationHandler(gen, newFakePreferenceRepo())

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/generate", `{}`, testUserID)
	_ = h.Generate(c)

	assert.Empty(t, gen.genReq.Topics)
	assert.Equal(t, generation.AllPlatforms, gen.genReq.Platforms)
}

func TestGenerate_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		neutral bool
	}{
		{"input", &generation.InputValidationError{Err: errors.New("topics required")}, http.StatusBadRequest, false},
		{"model", &generation.ModelInvocationError{Err: errors.New("quota exceeded")}, http.StatusBadGateway, true},
		{"timeout", &generation.ModelInvocationError{Err: fmt.Errorf("call: %w", context.DeadlineExceeded)}, http.StatusGatewayTimeout, true},
		{"schema", &generation.SchemaValidationError{Raw: "{}", Err: errors.New(`missing "posts"`)}, http.StatusBadGateway, true},
		{"other", errors.New("boom"), http.StatusInternalServerError, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zap.ErrorLevel)
			h := NewGenerationHandler(&fakeGenerator{err: tc.err}, newFakePreferenceRepo(), time.Minute, zap.New(core))

			c, _ := newTestContext(t, http.MethodPost, "/api/v1/generate", `{"topics":["a"],"platforms":["X"]}`, testUserID)
			he := requireHTTPError(t, h.Generate(c), tc.status)

			if tc.neutral {
				assert.Equal(t, aiUnavailableMessage, he.Message)
				assert.Equal(t, 1, logs.Len())
			} else {
				assert.NotEqual(t, aiUnavailableMessage, he.Message)
				assert.Zero(t, logs.Len())
			}
		})
	}
}

func TestGenerate_LogsRawSchemaOutput(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	gen := &fakeGenerator{err: &generation.SchemaValidationError{Raw: "not json", Err: errors.New("bad")}}
	h := NewGenerationHandler(gen, newFakePreferenceRepo(), time.Minute, zap.New(core))

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/generate", `{"topics":["a"],"platforms":["X"]}`, testUserID)
	requireHTTPError(t, h.Generate(c), http.StatusBadGateway)

	entries := logs.FilterMessage("model output rejected").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "not json", entries[0].ContextMap()["raw"])
}

func TestRegenerate(t *testing.T) {
	gen := &fakeGenerator{regenText: "shorter and punchier"}
	h := newGenerationHandler(gen, newFakePreferenceRepo())

	body := `{"originalPost":"long post","userEdits":"make it shorter","topic":"launch","platform":"Threads","imageUri":"data:image/png;base64,iVBORw0KGgo="}`
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/regenerate", body, testUserID)
	require.NoError(t, h.Regenerate(c))

	assert.JSONEq(t, `{"regeneratedPost":"shorter and punchier"}`, rec.Body.String())
	assert.Equal(t, generation.RegenerationRequest{
		OriginalPost: "long post",
		UserEdits:    "make it shorter",
		Topic:        "launch",
		Platform:     "Threads",
		ImageURI:     "data:image/png;base64,iVBORw0KGgo=",
	}, gen.regenReq)
}

func TestRegenerate_EmptyFieldsAccepted(t *testing.T) {
	gen := &fakeGenerator{regenText: ""}
	h := newGenerationHandler(gen, newFakePreferenceRepo())

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/regenerate",
		`{"originalPost":"","userEdits":"","topic":"","platform":""}`, testUserID)
	require.NoError(t, h.Regenerate(c))
	assert.JSONEq(t, `{"regeneratedPost":""}`, rec.Body.String())
}

func TestRegenerate_MissingField(t *testing.T) {
	gen := &fakeGenerator{}
	h := newGenerationHandler(gen, newFakePreferenceRepo())

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/regenerate",
		`{"originalPost":"p","userEdits":"e","topic":"t"}`, testUserID)
	requireHTTPError(t, h.Regenerate(c), http.StatusBadRequest)
	assert.Empty(t, gen.regenReq.OriginalPost)
}

func TestGenerate_Unauthenticated(t *testing.T) {
	h := newGenerationHandler(&fakeGenerator{}, newFakePreferenceRepo())

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/generate", `{}`, 0)
	requireHTTPError(t, h.Generate(c), http.StatusUnauthorized)
}
