package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	sopSvc "sopgen/internal/domain/services/sop"
	"sopgen/internal/httputil"
	"sopgen/internal/service/export"
)

// ExportHandler serves document downloads in the supported formats.
type ExportHandler struct {
	docs     sopSvc.DocumentService
	exporter *export.Exporter
	logger   *slog.Logger
}

// NewExportHandler creates an export handler.
func NewExportHandler(docs sopSvc.DocumentService, exporter *export.Exporter, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{docs: docs, exporter: exporter, logger: logger}
}

// Formats handles GET /api/export/formats.
func (h *ExportHandler) Formats(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"formats": export.Formats()})
}

// Export handles GET /api/documents/{id}/export/{format}.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	doc, err := h.docs.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	data, err := h.exporter.Export(doc, format)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("%s.%s", sanitizeFilename(doc.Title), format.Extension())
	httputil.RespondBinary(w, format.ContentType(), filename, data)
}

// sanitizeFilename reduces a document title to a safe download name.
func sanitizeFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "document"
	}
	var sb strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "document"
	}
	return sb.String()
}
