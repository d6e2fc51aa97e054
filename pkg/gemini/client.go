package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"leadroll/pkg/config"

	"google.golang.org/genai"
)

// ErrEmptyResponse means the model returned no usable text
var ErrEmptyResponse = errors.New("empty model response")

// Client wraps the Gemini API for structured JSON generation
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client from config
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// GenerateJSON sends a prompt constrained to a JSON response schema and
// returns the raw response text. Schema conformance is still validated by
// the caller; the model is treated as a non-deterministic oracle.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
