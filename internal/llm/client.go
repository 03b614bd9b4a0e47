// Package llm adapts an OpenAI-compatible completion API to the
// assistant's Model interface.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/atelierhq/atelier/internal/config"
)

// Client wraps a langchaingo model behind a single-prompt call
type Client struct {
	model llms.Model
}

// NewClient creates a completion client for the configured provider.
// Any OpenAI-compatible endpoint works, including Gemini and OpenRouter.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	return &Client{model: model}, nil
}

// Generate sends a single prompt and returns the completion text
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	return completion, nil
}
