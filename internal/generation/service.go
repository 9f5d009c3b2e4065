package generation

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service runs the two prompt flows against an injected model
type Service struct {
	model    Model
	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a Service. A nil logger is replaced by a no-op logger.
func NewService(model Model, logger *zap.Logger) (*Service, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		model:    model,
		validate: NewValidator(),
		logger:   logger,
	}, nil
}

// GenerateInitialPosts produces one draft per requested platform.
// The returned posts are a subset of the requested platforms in model order; full coverage is not guaranteed.
func (s *Service) GenerateInitialPosts(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &InputValidationError{Err: err}
	}

	raw, err := s.model.Generate(ctx, ModelRequest{
		Task:   TaskGeneratePosts,
		Prompt: RenderInitialPrompt(req),
		Schema: PostsSchema(),
		Input:  req,
	})
	if err != nil {
		return nil, &ModelInvocationError{Err: err}
	}

	result, err := parsePosts(s.validate, raw, req)
	if err != nil {
		return nil, err
	}

	if missing := missingPlatforms(req, result); len(missing) > 0 {
		s.logger.Warn("model skipped requested platforms", zap.Any("missing", missing))
	}
	s.logger.Debug("generated posts", zap.Int("count", len(result.Posts)), zap.Strings("topics", req.Topics))
	return result, nil
}

// RegeneratePostWithEdits rewrites a single draft following the user's edit instructions
func (s *Service) RegeneratePostWithEdits(ctx context.Context, req RegenerationRequest) (*RegenerationResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &InputValidationError{Err: err}
	}

	var image *InlineImage
	if req.ImageURI != "" {
		decoded, err := DecodeDataURI(req.ImageURI)
		if err != nil {
			return nil, &InputValidationError{Err: err}
		}
		image = decoded
	}

	raw, err := s.model.Generate(ctx, ModelRequest{
		Task:   TaskRegeneratePost,
		Prompt: RenderRegenerationPrompt(req),
		Schema: RegeneratedPostSchema(),
		Image:  image,
		Input:  req,
	})
	if err != nil {
		return nil, &ModelInvocationError{Err: err}
	}

	result, err := parseRegeneratedPost(raw)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("regenerated post", zap.String("platform", req.Platform), zap.Bool("with_image", image != nil))
	return result, nil
}
