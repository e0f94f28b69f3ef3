package handler

import (
	"log/slog"
	"net/http"
	"time"

	sopSvc "sopgen/internal/domain/services/sop"
	"sopgen/internal/httputil"
)

// DocumentHandler serves the document lifecycle endpoints.
type DocumentHandler struct {
	svc    sopSvc.DocumentService
	logger *slog.Logger
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler(svc sopSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, logger: logger}
}

// Create handles POST /api/documents.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req sopSvc.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CreatedBy == "" {
		req.CreatedBy = httputil.GetUser(r)
	}

	doc, err := h.svc.CreateDocument(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// List handles GET /api/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.svc.ListDocuments(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"documents": summaries})
}

// Get handles GET /api/documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /api/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDocument(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddSection handles POST /api/documents/{id}/sections.
func (h *DocumentHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	req := sopSvc.AddSectionRequest{Order: -1}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.DocumentID = r.PathValue("id")

	doc, err := h.svc.AddSection(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// RemoveSection handles DELETE /api/documents/{id}/sections/{title}.
func (h *DocumentHandler) RemoveSection(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.RemoveSection(r.Context(), r.PathValue("id"), r.PathValue("title"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateSection handles PUT /api/documents/{id}/sections/{title}.
func (h *DocumentHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var req sopSvc.UpdateSectionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.DocumentID = r.PathValue("id")
	req.Title = r.PathValue("title")

	doc, err := h.svc.UpdateSection(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// LogVersion handles POST /api/documents/{id}/versions.
func (h *DocumentHandler) LogVersion(w http.ResponseWriter, r *http.Request) {
	var req sopSvc.LogVersionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.DocumentID = r.PathValue("id")
	if req.User == "" {
		req.User = httputil.GetUser(r)
	}
	if req.Role == "" {
		req.Role = httputil.GetRole(r)
	}

	doc, err := h.svc.LogVersion(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// ListVersions handles GET /api/documents/{id}/versions.
func (h *DocumentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"versions": doc.Versions})
}

// Approve handles POST /api/documents/{id}/approve.
func (h *DocumentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Approver string `json:"approver"`
	}
	// Body is optional; the authenticated user is the default approver.
	_ = httputil.ParseJSON(w, r, &req)
	if req.Approver == "" {
		req.Approver = httputil.GetUser(r)
	}

	doc, err := h.svc.ApproveDocument(r.Context(), r.PathValue("id"), req.Approver)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Unlock handles POST /api/documents/{id}/unlock.
func (h *DocumentHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.UnlockDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// HealthCheck is a simple health check endpoint
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now(),
	})
}
