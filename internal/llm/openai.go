package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anonto42/postcraft/backend/internal/generation"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI calls an OpenAI-compatible chat completions endpoint
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI model from settings
func NewOpenAI(settings Settings) (*OpenAI, error) {
	if settings.APIKey == "" {
		return nil, errors.New("openai api key missing; provide LLM_API_KEY")
	}
	if settings.Model == "" {
		return nil, errors.New("llm model is required")
	}
	// one request per flow invocation; failures surface to the caller
	opts := []option.RequestOption{option.WithAPIKey(settings.APIKey), option.WithMaxRetries(0)}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}
	return &OpenAI{client: openai.NewClient(opts...), model: settings.Model}, nil
}

// Generate sends the prompt as a chat completion and returns the first choice
func (o *OpenAI) Generate(ctx context.Context, req generation.ModelRequest) (string, error) {
	msgs, err := buildMessages(req)
	if err != nil {
		return "", err
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages puts the output schema in the system message and the prompt, plus image, in the user message
func buildMessages(req generation.ModelRequest) ([]openai.ChatCompletionMessageParamUnion, error) {
	system := "Respond only with a JSON object, without markdown or commentary."
	if req.Schema != nil {
		schema, err := json.Marshal(req.Schema)
		if err != nil {
			return nil, fmt.Errorf("failed to encode output schema: %w", err)
		}
		system += " The JSON must match this JSON schema: " + string(schema)
	}

	msgs := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(system)}
	if req.Image == nil {
		return append(msgs, openai.UserMessage(req.Prompt)), nil
	}

	dataURL := "data:" + req.Image.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(req.Image.Data)
	return append(msgs, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Prompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
	})), nil
}
