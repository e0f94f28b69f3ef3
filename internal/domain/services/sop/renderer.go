package sop

import models "sopgen/internal/domain/models/sop"

// Renderer is the strategy interface for optional export backends
// (word-processor writer, spreadsheet writer, PDF converter). Each backend
// is probed once via Available; an unavailable backend makes the exporter
// fall back to a degraded rendering instead of failing the export.
type Renderer interface {
	// Available reports whether the backend can produce output in this
	// process (library wired in, external binary present).
	Available() bool

	// Render projects the document into the backend's byte format.
	Render(doc *models.Document) ([]byte, error)

	// Name returns the backend name for logging.
	Name() string
}

// PageConverter is the optional HTML-to-page backend used for PDF export.
// When no converter is available the exporter degrades to returning the
// HTML bytes with an explanatory comment instead of failing.
type PageConverter interface {
	// Available reports whether the converter can run in this process.
	Available() bool

	// Convert renders the HTML projection into page-format bytes.
	Convert(html []byte) ([]byte, error)

	// Name returns the converter name for logging.
	Name() string
}
