package export

import (
	"fmt"
	"log/slog"
	"time"

	models "sopgen/internal/domain/models/sop"
	sopSvc "sopgen/internal/domain/services/sop"
)

// Exporter projects a document snapshot into a target format's byte
// stream. It never mutates the document; exporting an unchanged document
// twice yields identical output. Optional backends are probed once and an
// unavailable (or failing) backend downgrades the output instead of
// failing the export: docx falls back to markdown bytes, excel to CSV
// text, pdf to commented HTML.
type Exporter struct {
	word   sopSvc.Renderer
	sheet  sopSvc.Renderer
	pdf    sopSvc.PageConverter
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithWordRenderer replaces the word-processor backend (nil disables it).
func WithWordRenderer(r sopSvc.Renderer) Option {
	return func(e *Exporter) { e.word = r }
}

// WithSheetRenderer replaces the spreadsheet backend (nil disables it).
func WithSheetRenderer(r sopSvc.Renderer) Option {
	return func(e *Exporter) { e.sheet = r }
}

// WithPageConverter replaces the HTML-to-PDF backend (nil disables it).
func WithPageConverter(c sopSvc.PageConverter) Option {
	return func(e *Exporter) { e.pdf = c }
}

// WithClock fixes the generation timestamp source. Tests use this to make
// output deterministic.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New creates an exporter with the default backends: go-docx, excelize,
// and wkhtmltopdf if its binary is on PATH.
func New(logger *slog.Logger, opts ...Option) *Exporter {
	e := &Exporter{
		logger: logger,
		now:    time.Now,
	}
	e.word = NewWordRenderer(func() time.Time { return e.now() })
	e.sheet = NewSheetRenderer()
	e.pdf = NewWkhtmltopdfConverter("")
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportDocument renders the document in the requested format. The tag is
// normalized case-insensitively ("xlsx" aliases "excel"); unknown tags
// return a validation error. All other failure modes downgrade per the
// backend policy and still return bytes.
func (e *Exporter) ExportDocument(doc *models.Document, tag string) ([]byte, error) {
	format, err := ParseFormat(tag)
	if err != nil {
		return nil, err
	}
	return e.Export(doc, format)
}

// Export renders the document in an already-parsed format.
func (e *Exporter) Export(doc *models.Document, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return []byte(e.renderMarkdown(doc)), nil

	case FormatHTML:
		return e.renderHTML(doc)

	case FormatDocx:
		if b, ok := e.renderWith(e.word, doc); ok {
			return b, nil
		}
		return []byte(e.renderMarkdown(doc)), nil

	case FormatExcel:
		if b, ok := e.renderWith(e.sheet, doc); ok {
			return b, nil
		}
		return renderCSV(doc), nil

	case FormatPDF:
		html, err := e.renderHTML(doc)
		if err != nil {
			return nil, err
		}
		if e.pdf != nil && e.pdf.Available() {
			if b, err := e.pdf.Convert(html); err == nil {
				return b, nil
			} else if e.logger != nil {
				e.logger.Warn("pdf conversion failed, returning html", "converter", e.pdf.Name(), "error", err)
			}
		}
		return append([]byte(pdfFallbackComment), html...), nil

	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// renderWith runs an optional backend, reporting whether it produced
// output. Backend errors are logged and treated as unavailability.
func (e *Exporter) renderWith(r sopSvc.Renderer, doc *models.Document) ([]byte, bool) {
	if r == nil || !r.Available() {
		return nil, false
	}
	b, err := r.Render(doc)
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("render backend failed, downgrading output", "backend", r.Name(), "error", err)
		}
		return nil, false
	}
	return b, true
}
