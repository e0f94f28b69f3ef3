package sop

import "context"

// PromptRequest carries one content-generation call. The core only needs
// this contract; retries and model selection belong to the providers.
type PromptRequest struct {
	// System frames the assistant (e.g. "expert SOP technical writer").
	System string

	// Prompt is the fully rendered section prompt.
	Prompt string

	// MaxTokens caps the response length; providers apply their own
	// default when zero.
	MaxTokens int
}

// TextProvider is the interface every AI text provider implements. It
// mirrors the external AI content service boundary: one blocking call
// returning a string.
type TextProvider interface {
	// GenerateText produces content for the given prompt.
	GenerateText(ctx context.Context, req *PromptRequest) (string, error)

	// Name returns the provider name (e.g. "anthropic", "openai", "mock").
	Name() string

	// Available reports whether the provider is usable (credentials
	// configured, backing service reachable at construction time).
	Available() bool
}
