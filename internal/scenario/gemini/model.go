// Package gemini adapts Google's Gemini API to scenario.Model.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"govos/internal/scenario"
)

const DefaultModel = "gemini-2.5-flash"

// Model calls GenerateContent with a JSON response schema.
type Model struct {
	client *genai.Client
	model  string
}

// Option configures the client.
type Option func(*genai.ClientConfig)

// WithBaseURL points the client at another endpoint.
func WithBaseURL(url string) Option {
	return func(c *genai.ClientConfig) {
		c.HTTPOptions.BaseURL = url
	}
}

func New(ctx context.Context, apiKey, model string, opts ...Option) (*Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Model{client: client, model: model}, nil
}

func (m *Model) ID() string { return "gemini" }

func (m *Model) Complete(ctx context.Context, req scenario.Request) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schemaFor(req.Kind),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", classify(ctx, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", scenario.NewModelError(scenario.ErrorBadData, m.ID(), "empty response", nil)
	}
	return text, nil
}

func classify(ctx context.Context, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key") || strings.Contains(msg, "PERMISSION_DENIED") || strings.Contains(msg, "UNAUTHENTICATED"):
		return scenario.NewModelError(scenario.ErrorAuthentication, "gemini", "rejected credentials", err)
	case strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return scenario.NewModelError(scenario.ErrorRateLimited, "gemini", "quota exhausted", err)
	default:
		return scenario.ClassifyContext(ctx, "gemini", err)
	}
}

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func enum(values ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Enum: values}
}

func schemaFor(kind scenario.RequestKind) *genai.Schema {
	if kind == scenario.RequestReply {
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"text":       str(),
				"moodChange": {Type: genai.TypeInteger},
			},
			Required: []string{"text", "moodChange"},
		}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"citizenName":    str(),
			"initialMessage": str(),
			"profile": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":                 str(),
					"missionType":          enum("issue", "excel"),
					"address":              str(),
					"addressOld":           str(),
					"targetName":           str(),
					"relationship":         str(),
					"detailOption":         str(),
					"purpose":              str(),
					"requestType":          str(),
					"purposeDetail":        str(),
					"deliveryMethod":       enum("print", "electronic_wallet", "pdf", "fax"),
					"excelTaskDescription": str(),
					"certificateVariant":   enum("general", "detailed"),
					"rrinDisclosure":       enum("masked", "unmasked"),
					"excelData": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"colA": str(),
								"colB": str(),
							},
						},
					},
				},
			},
		},
		Required: []string{"citizenName", "initialMessage", "profile"},
	}
}

var _ scenario.Model = (*Model)(nil)
