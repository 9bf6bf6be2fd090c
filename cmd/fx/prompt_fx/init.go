package prompt_fx

import (
	"context"
	"fmt"

	"github.com/fatihtunali/travelquotebot/internal/config"
	"github.com/fatihtunali/travelquotebot/internal/services"
	"github.com/fatihtunali/travelquotebot/pkg/utils"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Provide(
	ProvideGenerationClient,
	services.NewPromptService,
	services.NewResponseNormalizer,
	services.NewServiceResolver,
)

// ProvideGenerationClient picks the text-completion backend from
// GENERATION_PROVIDER.
func ProvideGenerationClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (utils.GenerationClient, error) {
	gen := cfg.Generation
	params := utils.DecodingParams{
		Model:       gen.Model,
		Temperature: gen.Temperature,
		MaxTokens:   gen.MaxTokens,
		Timeout:     gen.Timeout,
	}

	log.Info("Initializing generation client",
		zap.String("provider", gen.Provider),
		zap.String("model", gen.Model),
		zap.Duration("timeout", gen.Timeout))

	switch gen.Provider {
	case "ollama":
		return utils.NewOllamaGenerationClient(gen.OllamaURL, params), nil
	case "openai":
		if gen.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
		return utils.NewOpenAIGenerationClient(gen.OpenAIAPIKey, gen.OpenAIBaseURL, params), nil
	case "gemini":
		if gen.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
		client, err := utils.NewGeminiGenerationClient(context.Background(), gen.GeminiAPIKey, params)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'ollama', 'openai' or 'gemini'", gen.Provider)
	}
}
