package sop

import (
	"context"

	models "sopgen/internal/domain/models/sop"
)

// Translator is the machine-translation boundary. Failures surface as
// in-band error strings in the returned text, never as errors that abort
// translation of the rest of a document.
type Translator interface {
	// TranslateText translates a single string into the target language
	// (name or code). Empty input is returned unchanged.
	TranslateText(ctx context.Context, text, targetLanguage string) string

	// TranslateDocument returns a translated deep copy of the document;
	// the original is never mutated.
	TranslateDocument(ctx context.Context, doc *models.Document, targetLanguage string) *models.Document

	// SupportedLanguages lists the language names the translator accepts.
	SupportedLanguages() []string
}
