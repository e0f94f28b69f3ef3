package handler

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"sopgen/internal/domain"
	"sopgen/internal/httputil"
	"sopgen/internal/service/assets"
)

// multipart form memory cap; larger parts spill to disk
const maxUploadMemory = 8 << 20

// AssetHandler serves asset upload endpoints.
type AssetHandler struct {
	svc    *assets.Service
	logger *slog.Logger
}

// NewAssetHandler creates an asset upload handler.
func NewAssetHandler(svc *assets.Service, logger *slog.Logger) *AssetHandler {
	return &AssetHandler{svc: svc, logger: logger}
}

func readUpload(fh *multipart.FileHeader) (assets.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return assets.Upload{}, fmt.Errorf("opening upload '%s': %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return assets.Upload{}, fmt.Errorf("reading upload '%s': %w", fh.Filename, err)
	}
	return assets.Upload{Name: fh.Filename, Data: data}, nil
}

func (h *AssetHandler) formFile(w http.ResponseWriter, r *http.Request, field string) (assets.Upload, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return assets.Upload{}, false
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("missing '%s' form field", field))
		return assets.Upload{}, false
	}
	up, err := readUpload(files[0])
	if err != nil {
		handleError(w, h.logger, err)
		return assets.Upload{}, false
	}
	return up, true
}

// UploadLogo handles POST /api/documents/{id}/assets/logo with a "file"
// form field.
func (h *AssetHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	up, ok := h.formFile(w, r, "file")
	if !ok {
		return
	}

	doc, err := h.svc.AttachLogo(r.Context(), r.PathValue("id"), up)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UploadPhotos handles POST /api/documents/{id}/assets/photos with one or
// more "files" form fields.
func (h *AssetHandler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		handleError(w, h.logger, &domain.ValidationError{Message: "missing 'files' form field"})
		return
	}

	uploads := make([]assets.Upload, 0, len(files))
	for _, fh := range files {
		up, err := readUpload(fh)
		if err != nil {
			handleError(w, h.logger, err)
			return
		}
		uploads = append(uploads, up)
	}

	doc, err := h.svc.AttachPhotos(r.Context(), r.PathValue("id"), uploads)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UploadFlowchart handles POST /api/documents/{id}/assets/flowchart with
// a "file" form field holding an image or PDF.
func (h *AssetHandler) UploadFlowchart(w http.ResponseWriter, r *http.Request) {
	up, ok := h.formFile(w, r, "file")
	if !ok {
		return
	}

	doc, err := h.svc.AttachFlowchart(r.Context(), r.PathValue("id"), up)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}
