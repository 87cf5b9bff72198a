package rewrite

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider completes through the Gemini API
type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

// NewGeminiProvider creates a provider. It fails with ErrRewriteDisabled when
// no API key is configured.
func NewGeminiProvider(cfg ProviderConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrRewriteDisabled)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiProvider{
		client:      client,
		model:       model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: float32(cfg.Temperature),
	}, nil
}

// Complete implements Completer
func (p *GeminiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(p.temperature),
		MaxOutputTokens:   p.maxTokens,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("GenAI request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from GenAI")
	}
	return text, nil
}
