package handler

import (
	"log/slog"
	"net/http"

	"sopgen/internal/httputil"
	"sopgen/internal/service/template"
)

// TemplateHandler serves the template library and standards catalog.
type TemplateHandler struct {
	templates *template.Manager
	standards *template.StandardsCatalog
	logger    *slog.Logger
}

// NewTemplateHandler creates a template handler.
func NewTemplateHandler(templates *template.Manager, standards *template.StandardsCatalog, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, standards: standards, logger: logger}
}

// List handles GET /api/templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"templates": h.templates.ListTemplates(),
	})
}

// Info handles GET /api/templates/{name}.
func (h *TemplateHandler) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.templates.TemplateInfo(r.PathValue("name"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, info)
}

// Save handles PUT /api/templates/{name}, storing a custom template.
func (h *TemplateHandler) Save(w http.ResponseWriter, r *http.Request) {
	var def template.Definition
	if err := httputil.ParseJSON(w, r, &def); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	path, err := h.templates.SaveTemplate(r.PathValue("name"), &def)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"name": r.PathValue("name"),
		"path": path,
	})
}

// Standards handles GET /api/standards with an optional ?q= filter.
func (h *TemplateHandler) Standards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var results []template.Standard
	if query == "" {
		results = h.standards.All()
	} else {
		results = h.standards.Search(query)
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"standards": results})
}
