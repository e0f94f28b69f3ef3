package handler

import (
	"log/slog"
	"net/http"

	sopSvc "sopgen/internal/domain/services/sop"
	"sopgen/internal/httputil"
	"sopgen/internal/service/generate"
)

// GenerateHandler serves AI content generation endpoints.
type GenerateHandler struct {
	docs      sopSvc.DocumentService
	generator *generate.Service
	logger    *slog.Logger
}

// NewGenerateHandler creates a generation handler.
func NewGenerateHandler(docs sopSvc.DocumentService, generator *generate.Service, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{docs: docs, generator: generator, logger: logger}
}

// Providers handles GET /api/generate/providers.
func (h *GenerateHandler) Providers(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"providers": h.generator.Providers(),
	})
}

// GenerateSection handles POST /api/documents/{id}/sections/{title}/generate.
// The generated content is written into the section and persisted.
func (h *GenerateHandler) GenerateSection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Context string `json:"context"`
	}
	// A body is optional; context falls back to the document description.
	_ = httputil.ParseJSON(w, r, &req)

	docID := r.PathValue("id")
	title := r.PathValue("title")

	doc, err := h.docs.GetDocument(r.Context(), docID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	content, err := h.generator.GenerateSectionContent(r.Context(), doc, title, req.Context)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	updated, err := h.docs.UpdateSection(r.Context(), &sopSvc.UpdateSectionRequest{
		DocumentID:  docID,
		Title:       title,
		Content:     content,
		AIGenerated: true,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, updated)
}
