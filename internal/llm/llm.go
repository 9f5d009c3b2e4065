// Package llm provides generation.Model implementations backed by real providers.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/postcraft/backend/internal/generation"
	"go.uber.org/zap"
)

// Settings selects and configures a model provider
type Settings struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

// New builds the model for the configured provider
func New(ctx context.Context, settings Settings) (generation.Model, error) {
	switch settings.Provider {
	case "gemini", "googleai":
		g, err := NewGemini(ctx, settings)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "openai":
		return newOpenAIModel(settings)
	case "deepseek":
		// OpenAI-compatible endpoint, base URL is mandatory
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return newOpenAIModel(settings)
	case "mock":
		return Mock{}, nil
	case "":
		return nil, fmt.Errorf("llm provider not configured")
	default:
		return nil, fmt.Errorf("llm provider %s not supported", settings.Provider)
	}
}

func newOpenAIModel(settings Settings) (generation.Model, error) {
	o, err := NewOpenAI(settings)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Logged wraps a model and logs every call with its latency
type Logged struct {
	next   generation.Model
	name   string
	logger *zap.Logger
}

// WithLogging decorates next so each call is logged under the provider name
func WithLogging(next generation.Model, name string, logger *zap.Logger) *Logged {
	return &Logged{next: next, name: name, logger: logger}
}

// Generate forwards to the wrapped model
func (l *Logged) Generate(ctx context.Context, req generation.ModelRequest) (string, error) {
	start := time.Now()
	out, err := l.next.Generate(ctx, req)
	fields := []zap.Field{
		zap.String("provider", l.name),
		zap.String("task", string(req.Task)),
		zap.Bool("with_image", req.Image != nil),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		l.logger.Error("model call failed", append(fields, zap.Error(err))...)
		return "", err
	}
	l.logger.Info("model call completed", append(fields, zap.Int("output_bytes", len(out)))...)
	return out, nil
}
