package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerationClient implements GenerationClient using Google's Gemini models
type GeminiGenerationClient struct {
	client *genai.Client
	params DecodingParams
}

// NewGeminiGenerationClient creates a new Gemini client
func NewGeminiGenerationClient(ctx context.Context, apiKey string, params DecodingParams) (*GeminiGenerationClient, error) {
	if params.Model == "" {
		params.Model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerationClient{
		client: client,
		params: params,
	}, nil
}

func (c *GeminiGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.params.Timeout)
	defer cancel()

	m := c.client.GenerativeModel(c.params.Model)
	configureGeminiModel(m, c.params)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGenerationError("gemini", err)
	}
	return geminiText(resp)
}

func configureGeminiModel(m *genai.GenerativeModel, params DecodingParams) {
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(params.Temperature)
	m.SetMaxOutputTokens(int32(params.MaxTokens))
}

// geminiText joins the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: %w: no content generated", ErrGenerationTransport)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String(), nil
}

func (c *GeminiGenerationClient) Close() error {
	return c.client.Close()
}
