package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	sopSvc "sopgen/internal/domain/services/sop"
)

const defaultModel = "claude-sonnet-4-20250514"

// Provider implements the TextProvider interface for Anthropic (Claude)
// models.
type Provider struct {
	client *anthropic.Client
	model  string
}

// NewProvider creates a new Anthropic provider with the given API key.
func NewProvider(apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &Provider{
		client: &client,
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return "anthropic" }

// Available reports whether the provider was constructed with credentials.
func (p *Provider) Available() bool { return p.client != nil }

// GenerateText generates section content with Claude.
func (p *Provider) GenerateText(ctx context.Context, req *sopSvc.PromptRequest) (string, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: req.System,
			},
		}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	for _, content := range message.Content {
		if content.Type == "text" {
			return strings.TrimSpace(content.Text), nil
		}
	}
	return "", fmt.Errorf("anthropic response contained no text block")
}
