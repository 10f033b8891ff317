// Package openai adapts the OpenAI chat completions API to scenario.Model.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"

	"govos/internal/scenario"
)

const DefaultModel = "gpt-4o-mini"

// Model requests JSON-object chat completions.
type Model struct {
	client *openai.Client
	model  string
}

func New(apiKey, model string, opts ...option.RequestOption) (*Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client := openai.NewClient(append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)...)
	return &Model{client: &client, model: model}, nil
}

func (m *Model) ID() string { return "openai" }

func (m *Model) Complete(ctx context.Context, req scenario.Request) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	completion, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    openai.ChatModel(m.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.9),
	})
	if err != nil {
		return "", classify(ctx, err)
	}
	if len(completion.Choices) == 0 {
		return "", scenario.NewModelError(scenario.ErrorBadData, m.ID(), "no choices returned", nil)
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", scenario.NewModelError(scenario.ErrorBadData, m.ID(), "empty response", nil)
	}
	return content, nil
}

func classify(ctx context.Context, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return scenario.NewModelError(scenario.ErrorAuthentication, "openai", "rejected credentials", err)
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return scenario.NewModelError(scenario.ErrorRateLimited, "openai", "rate limited", err)
		case apiErr.StatusCode >= 500:
			return scenario.NewModelError(scenario.ErrorOutage, "openai", "server error", err)
		default:
			return scenario.NewModelError(scenario.ErrorBadData, "openai", "request rejected", err)
		}
	}
	return scenario.ClassifyContext(ctx, "openai", err)
}

var _ scenario.Model = (*Model)(nil)
