package mock

import (
	"context"
	"fmt"
	"strings"

	loremgen "github.com/bozaro/golorem"

	sopSvc "sopgen/internal/domain/services/sop"
)

// Provider is a mock text provider that generates lorem ipsum content.
// Used for testing and development without requiring real API keys.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new mock provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return "mock" }

// Available always returns true; the mock provider needs no credentials.
func (p *Provider) Available() bool { return true }

// GenerateText produces placeholder section content. The first line echoes
// the section title extracted from the prompt so generated drafts remain
// distinguishable in a document.
func (p *Provider) GenerateText(ctx context.Context, req *sopSvc.PromptRequest) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	// Estimate: 1 token is roughly 4 characters. Cap the draft well below
	// the budget so real providers stay the longer option.
	targetChars := maxTokens
	if targetChars > 1200 {
		targetChars = 1200
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[Draft content pending review]\n\n")
	for sb.Len() < targetChars {
		sb.WriteString(p.generator.Paragraph(2, 4))
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String()), nil
}
