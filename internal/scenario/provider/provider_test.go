package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govos/internal/platform/config"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("offline", func(t *testing.T) {
		m, err := New(ctx, config.Defaults().Scenario)
		require.NoError(t, err)
		assert.Equal(t, "offline", m.ID())
	})

	t.Run("openai", func(t *testing.T) {
		cfg := config.Defaults().Scenario
		cfg.Provider = config.ProviderOpenAI
		cfg.OpenAIAPIKey = "sk-test"
		m, err := New(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, "openai", m.ID())
	})

	t.Run("gemini", func(t *testing.T) {
		cfg := config.Defaults().Scenario
		cfg.Provider = config.ProviderGemini
		cfg.GeminiAPIKey = "test-key"
		m, err := New(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, "gemini", m.ID())
	})
}
