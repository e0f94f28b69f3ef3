package handler

import (
	"log/slog"
	"net/http"

	sopSvc "sopgen/internal/domain/services/sop"
	"sopgen/internal/httputil"
)

// TranslateHandler serves document translation endpoints.
type TranslateHandler struct {
	docs       sopSvc.DocumentService
	translator sopSvc.Translator
	logger     *slog.Logger
}

// NewTranslateHandler creates a translation handler.
func NewTranslateHandler(docs sopSvc.DocumentService, translator sopSvc.Translator, logger *slog.Logger) *TranslateHandler {
	return &TranslateHandler{docs: docs, translator: translator, logger: logger}
}

// Languages handles GET /api/translate/languages.
func (h *TranslateHandler) Languages(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"languages": h.translator.SupportedLanguages(),
	})
}

// Translate handles POST /api/documents/{id}/translate. The translated
// copy is returned without persisting; the source document is untouched.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Language == "" {
		httputil.RespondError(w, http.StatusBadRequest, "language is required")
		return
	}

	doc, err := h.docs.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	translated := h.translator.TranslateDocument(r.Context(), doc, req.Language)
	httputil.RespondJSON(w, http.StatusOK, translated)
}
