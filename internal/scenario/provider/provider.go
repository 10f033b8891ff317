// Package provider builds the scenario Model named by configuration.
package provider

import (
	"context"
	"fmt"

	"govos/internal/platform/config"
	"govos/internal/scenario"
	"govos/internal/scenario/gemini"
	"govos/internal/scenario/offline"
	"govos/internal/scenario/openai"
)

// New returns the model for cfg.Provider. The offline model needs no
// credentials and is used for unknown providers that passed validation.
func New(ctx context.Context, cfg config.Scenario) (scenario.Model, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		m, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini model: %w", err)
		}
		return m, nil
	case config.ProviderOpenAI:
		m, err := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, fmt.Errorf("openai model: %w", err)
		}
		return m, nil
	default:
		return offline.New(uint64(cfg.Seed)), nil
	}
}
