package completion

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/consultkit/consultkit/internal/domain/tool"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient generates text with Google's Gemini API.
type GeminiClient struct {
	client       *genai.Client
	defaultModel string
}

func NewGeminiClient(ctx context.Context, apiKey, defaultModel string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	if defaultModel == "" {
		defaultModel = defaultGeminiModel
	}
	return &GeminiClient{client: client, defaultModel: defaultModel}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, req tool.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return resp.Text(), nil
}
