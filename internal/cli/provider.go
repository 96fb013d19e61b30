package cli

import (
	"context"
	"fmt"
	"log/slog"

	"respira/internal/config"
	"respira/internal/recommend"
)

// newProvider picks the recommendation backend. Gemini without an API key
// degrades to the offline keyword provider.
func newProvider(ctx context.Context, cfg config.RecommendConfig, logger *slog.Logger) (recommend.Provider, error) {
	switch cfg.Provider {
	case config.ProviderKeyword:
		return recommend.NewKeywordProvider(), nil
	case config.ProviderGemini, "":
		apiKey := cfg.ResolveAPIKey()
		if apiKey == "" {
			logger.Warn("no Gemini API key, using offline recommendations",
				slog.String("env", cfg.APIKeyEnv),
			)
			return recommend.NewKeywordProvider(), nil
		}
		modelName := cfg.Model
		if modelName == "" {
			modelName = recommend.DefaultGeminiModel
		}
		provider, err := recommend.NewGeminiProvider(ctx, apiKey, modelName)
		if err != nil {
			return nil, fmt.Errorf("create gemini provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown recommendation provider %q", cfg.Provider)
	}
}

func newService(provider recommend.Provider, cfg config.RecommendConfig, logger *slog.Logger) *recommend.Service {
	return recommend.NewService(provider, recommend.Options{
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
}
