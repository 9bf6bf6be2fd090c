package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerationClient works against OpenAI or any compatible server,
// Ollama's /v1 included, through OPENAI_BASE_URL.
type OpenAIGenerationClient struct {
	client *openai.Client
	params DecodingParams
}

func NewOpenAIGenerationClient(apiKey, baseURL string, params DecodingParams) *OpenAIGenerationClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerationClient{
		client: openai.NewClientWithConfig(cfg),
		params: params,
	}
}

func (c *OpenAIGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.params.Timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.params.Model,
		Temperature: c.params.Temperature,
		MaxTokens:   c.params.MaxTokens,
		Stream:      false,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyGenerationError("openai", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w: no choices returned", ErrGenerationTransport)
	}
	return resp.Choices[0].Message.Content, nil
}
