package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"
	sopSvc "sopgen/internal/domain/services/sop"
)

const defaultMaxTokens = 2000

// Service generates draft section content by routing prompts across the
// registered text providers. Providers are tried in routing order and the
// first one that succeeds wins; the mock provider acts as the terminal
// fallback so generation never hard-fails while drafting.
type Service struct {
	providers map[string]sopSvc.TextProvider
	logger    *slog.Logger
	maxTokens int
}

// NewService creates a generation service. The mock provider should be
// included so there is always an available fallback.
func NewService(logger *slog.Logger, providers ...sopSvc.TextProvider) *Service {
	byName := make(map[string]sopSvc.TextProvider, len(providers))
	for _, p := range providers {
		if p != nil {
			byName[p.Name()] = p
		}
	}
	return &Service{
		providers: byName,
		logger:    logger,
		maxTokens: defaultMaxTokens,
	}
}

// Providers returns the names of registered providers that report available.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for name, p := range s.providers {
		if p.Available() {
			names = append(names, name)
		}
	}
	return names
}

// routeProviders orders provider names by fit for the section title.
// Reference-heavy sections prefer anthropic, procedural and framing
// sections prefer openai, and mock always closes the chain.
func routeProviders(sectionTitle string) []string {
	title := strings.ToLower(sectionTitle)

	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(title, w) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("reference", "normative", "citation"):
		return []string{"anthropic", "openai", "mock"}
	case containsAny("procedure", "method", "steps", "test"):
		return []string{"openai", "anthropic", "mock"}
	case containsAny("purpose", "scope", "objective"):
		return []string{"openai", "anthropic", "mock"}
	default:
		return []string{"openai", "anthropic", "mock"}
	}
}

// GenerateSectionContent produces draft content for the named section of the
// document. additionalContext overrides the document description as prompt
// context when non-empty.
func (s *Service) GenerateSectionContent(ctx context.Context, doc *models.Document, sectionTitle, additionalContext string) (string, error) {
	if doc == nil {
		return "", &domain.ValidationError{Message: "document is required"}
	}
	if strings.TrimSpace(sectionTitle) == "" {
		return "", &domain.ValidationError{Message: "section title is required"}
	}

	promptContext := additionalContext
	if promptContext == "" {
		promptContext = doc.Metadata.Description
	}
	standards := strings.Join(doc.Metadata.Standards, ", ")

	req := &sopSvc.PromptRequest{
		System:    systemPrompt,
		Prompt:    buildPrompt(sectionTitle, doc.Title, promptContext, standards),
		MaxTokens: s.maxTokens,
	}

	var lastErr error
	for _, name := range routeProviders(sectionTitle) {
		provider, ok := s.providers[name]
		if !ok || !provider.Available() {
			continue
		}

		content, err := provider.GenerateText(ctx, req)
		if err != nil {
			lastErr = err
			s.logger.Warn("text provider failed, trying next",
				"provider", name,
				"section", sectionTitle,
				"error", err)
			continue
		}

		s.logger.Info("section content generated",
			"provider", name,
			"section", sectionTitle,
			"document_id", doc.ID)
		return content, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("all text providers failed: %w", lastErr)
	}
	return "", fmt.Errorf("no text provider available")
}

// PopulateSection generates content for an existing section and writes it
// into the document, marking the section as AI generated. Locked sections
// are left untouched.
func (s *Service) PopulateSection(ctx context.Context, doc *models.Document, sectionTitle, additionalContext string) error {
	section := doc.GetSection(sectionTitle)
	if section == nil {
		return &domain.NotFoundError{Message: fmt.Sprintf("section '%s' not found", sectionTitle)}
	}
	if section.Locked {
		return &domain.LockedError{Message: fmt.Sprintf("section '%s' is locked", sectionTitle)}
	}

	content, err := s.GenerateSectionContent(ctx, doc, sectionTitle, additionalContext)
	if err != nil {
		return err
	}

	doc.UpdateSection(sectionTitle, content, true)
	return nil
}
