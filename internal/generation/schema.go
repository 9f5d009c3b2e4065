package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns the validator used for flow inputs and outputs
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

type regenerationOutput struct {
	RegeneratedPost *string `json:"regeneratedPost"`
}

// parsePosts decodes and validates the initial generation output against the request
func parsePosts(v *validator.Validate, raw string, req GenerationRequest) (*GenerationResult, error) {
	var result GenerationResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		return nil, &SchemaValidationError{Raw: raw, Err: err}
	}
	if err := v.Struct(result); err != nil {
		return nil, &SchemaValidationError{Raw: raw, Err: err}
	}

	if len(req.Platforms) > 0 && len(result.Posts) == 0 {
		return nil, &SchemaValidationError{Raw: raw, Err: errors.New("no posts returned for the requested platforms")}
	}

	requested := make(map[Platform]bool, len(req.Platforms))
	for _, p := range req.Platforms {
		requested[p] = true
	}
	for _, post := range result.Posts {
		if !requested[post.Platform] {
			return nil, &SchemaValidationError{Raw: raw, Err: fmt.Errorf("post returned for unrequested platform %q", post.Platform)}
		}
	}
	return &result, nil
}

// parseRegeneratedPost decodes the regeneration output; the text is returned verbatim
func parseRegeneratedPost(raw string) (*RegenerationResult, error) {
	var out regenerationOutput
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &out); err != nil {
		return nil, &SchemaValidationError{Raw: raw, Err: err}
	}
	if out.RegeneratedPost == nil {
		return nil, &SchemaValidationError{Raw: raw, Err: errors.New(`missing "regeneratedPost" field`)}
	}
	return &RegenerationResult{RegeneratedPost: *out.RegeneratedPost}, nil
}

// missingPlatforms returns requested platforms the model produced no post for
func missingPlatforms(req GenerationRequest, result *GenerationResult) []Platform {
	got := make(map[Platform]bool, len(result.Posts))
	for _, post := range result.Posts {
		got[post.Platform] = true
	}
	var missing []Platform
	for _, p := range req.Platforms {
		if !got[p] {
			missing = append(missing, p)
			got[p] = true
		}
	}
	return missing
}

// stripCodeFence removes a markdown code fence some models wrap JSON in
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	_, body, ok := strings.Cut(s, "\n")
	if !ok {
		return s
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body), "```"))
}
