package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OllamaGenerationClient talks to Ollama's native /api/generate endpoint.
type OllamaGenerationClient struct {
	url        string
	params     DecodingParams
	httpClient *http.Client
}

type ollamaGenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
	Stream      bool    `json:"stream"`
	Format      string  `json:"format"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func NewOllamaGenerationClient(url string, params DecodingParams) *OllamaGenerationClient {
	return &OllamaGenerationClient{
		url:        url,
		params:     params,
		httpClient: &http.Client{Timeout: params.Timeout},
	}
}

func (c *OllamaGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.params.Timeout)
	defer cancel()

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:       c.params.Model,
		Prompt:      prompt,
		Temperature: c.params.Temperature,
		NumPredict:  c.params.MaxTokens,
		Stream:      false,
		Format:      "json",
	})
	if err != nil {
		return "", fmt.Errorf("encoding ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: %w: %w", ErrGenerationTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyGenerationError("ollama", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyGenerationError("ollama", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama: %w: status %d", ErrGenerationTransport, resp.StatusCode)
	}

	var out ollamaGenerateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// not an envelope; the normalizer decides what the text is worth
		return string(raw), nil
	}
	return out.Response, nil
}
