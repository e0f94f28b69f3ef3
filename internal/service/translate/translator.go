package translate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	models "sopgen/internal/domain/models/sop"
)

const (
	defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

	// The upstream service rejects queries over 5000 characters; chunk
	// well below that at paragraph boundaries.
	maxChunkLength = 4500
)

// GoogleTranslator translates text through the public Google translate
// endpoint. Failures never propagate as errors; failed segments are
// replaced with an in-band marker so a partially translated document
// remains readable and exportable.
type GoogleTranslator struct {
	client   *http.Client
	endpoint string
	logger   *slog.Logger
}

// Option configures a GoogleTranslator.
type Option func(*GoogleTranslator)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *GoogleTranslator) { t.client = c }
}

// WithEndpoint overrides the translate endpoint, used in tests.
func WithEndpoint(endpoint string) Option {
	return func(t *GoogleTranslator) { t.endpoint = endpoint }
}

// NewGoogleTranslator creates a translator.
func NewGoogleTranslator(logger *slog.Logger, opts ...Option) *GoogleTranslator {
	t := &GoogleTranslator{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: defaultEndpoint,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SupportedLanguages returns the supported language names, sorted.
func (t *GoogleTranslator) SupportedLanguages() []string {
	return supportedLanguages()
}

// TranslateText translates text from English to the target language, which
// may be a supported language name or a raw code. Empty text and English
// targets are returned unchanged. On failure the text is replaced with a
// truncated error marker.
func (t *GoogleTranslator) TranslateText(ctx context.Context, text, target string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	code := LanguageCode(target)
	if code == "en" {
		return text
	}

	if len(text) <= maxChunkLength {
		out, err := t.translateChunk(ctx, text, code)
		if err != nil {
			t.logger.Error("translation failed", "target", code, "error", err)
			return errorMarker(text)
		}
		return out
	}

	chunks := splitText(text, maxChunkLength)
	translated := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			translated = append(translated, chunk)
			continue
		}
		out, err := t.translateChunk(ctx, chunk, code)
		if err != nil {
			t.logger.Error("translation failed", "target", code, "error", err)
			return errorMarker(text)
		}
		translated = append(translated, out)
	}
	return strings.Join(translated, "\n\n")
}

// TranslateDocument translates a copy of the document, leaving the original
// untouched. Section and document metadata record the target language.
func (t *GoogleTranslator) TranslateDocument(ctx context.Context, doc *models.Document, target string) *models.Document {
	out := doc.Clone()

	t.logger.Info("translating document", "document_id", doc.ID, "target", target)

	out.Title = t.TranslateText(ctx, out.Title, target)
	if out.Metadata.Company != "" {
		out.Metadata.Company = t.TranslateText(ctx, out.Metadata.Company, target)
	}
	out.Metadata.TranslatedTo = target
	out.Metadata.OriginalLanguage = "English"

	for i := range out.Sections {
		sec := &out.Sections[i]
		sec.Title = t.TranslateText(ctx, sec.Title, target)
		if sec.Content != "" {
			sec.Content = t.TranslateText(ctx, sec.Content, target)
		}
		if sec.Metadata == nil {
			sec.Metadata = make(map[string]string)
		}
		sec.Metadata["translated"] = "true"
		sec.Metadata["language"] = target
	}

	t.logger.Info("document translation completed",
		"document_id", doc.ID,
		"sections", len(out.Sections))
	return out
}

func (t *GoogleTranslator) translateChunk(ctx context.Context, text, code string) (string, error) {
	query := url.Values{
		"client": {"gtx"},
		"sl":     {"en"},
		"tl":     {code},
		"dt":     {"t"},
		"q":      {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate endpoint returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// The gtx reply is a nested array; the first element holds pairs of
	// [translated, original] segments.
	segments := gjson.GetBytes(body, "0.#.0")
	if !segments.Exists() {
		return "", fmt.Errorf("unexpected translate response shape")
	}

	var sb strings.Builder
	for _, seg := range segments.Array() {
		sb.WriteString(seg.String())
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("translate response contained no segments")
	}
	return sb.String(), nil
}

// splitText splits text into chunks at paragraph boundaries, keeping each
// chunk at or under maxLen where possible. A single oversized paragraph
// becomes its own chunk.
func splitText(text string, maxLen int) []string {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current string
	for _, para := range paragraphs {
		if len(current)+len(para)+2 <= maxLen {
			if current != "" {
				current += "\n\n" + para
			} else {
				current = para
			}
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		current = para
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

func errorMarker(text string) string {
	runes := []rune(text)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return fmt.Sprintf("[Translation Error: %s...]", string(runes))
}
