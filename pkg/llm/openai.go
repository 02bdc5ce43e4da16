package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// GeminiBaseURL is Google's OpenAI-compatible endpoint for Gemini models.
const GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// OpenAIProvider implements Provider for OpenAI and OpenAI-compatible
// endpoints (Gemini).
type OpenAIProvider struct {
	client openai.Client
	name   string
	model  string
	// inlineFilesAsImages sends every attachment as an image_url data URL.
	// Gemini accepts PDFs this way; OpenAI needs a file part.
	inlineFilesAsImages bool
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key required")
	}

	model := cfg.Model
	if model == "" {
		model = GetDefaultModel("openai")
	}

	return &OpenAIProvider{
		client: openai.NewClient(clientOptions(cfg)...),
		name:   "openai",
		model:  model,
	}, nil
}

// NewGeminiProvider creates a provider for Gemini through its
// OpenAI-compatible endpoint.
func NewGeminiProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = GeminiBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = GetDefaultModel("gemini")
	}

	return &OpenAIProvider{
		client:              openai.NewClient(clientOptions(cfg)...),
		name:                "gemini",
		model:               model,
		inlineFilesAsImages: true,
	}, nil
}

func clientOptions(cfg ProviderConfig) []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return opts
}

// Execute sends a completion request to the endpoint.
func (p *OpenAIProvider) Execute(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		if msg.Role == RoleUser {
			messages = append(messages, p.userMessage(msg))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	// Use native structured outputs if schema provided
	if req.JSONSchema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "invoice_classification",
					Schema: req.JSONSchema,
					Strict: openai.Bool(req.StrictMode),
				},
			},
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s API error: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: no choices in response: %w", p.name, ErrNoContent)
	}

	return &Response{
		Content:      resp.Choices[0].Message.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
		Model:    resp.Model,
		Duration: time.Since(start),
	}, nil
}

func (p *OpenAIProvider) userMessage(msg Message) openai.ChatCompletionMessageParamUnion {
	if len(msg.Attachments) == 0 {
		return openai.UserMessage(msg.Content)
	}

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(msg.Attachments)+1)
	parts = append(parts, openai.TextContentPart(msg.Content))
	for _, att := range msg.Attachments {
		if att.IsImage() || p.inlineFilesAsImages {
			parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: att.DataURL(),
			}))
			continue
		}
		parts = append(parts, openai.FileContentPart(openai.ChatCompletionContentPartFileFileParam{
			FileData: openai.String(att.DataURL()),
			Filename: openai.String(att.Filename),
		}))
	}
	return openai.UserMessage(parts)
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string {
	return p.model
}

var _ Provider = (*OpenAIProvider)(nil)
