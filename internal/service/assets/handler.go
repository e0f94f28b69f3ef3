package assets

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
)

// Upload size limits.
const (
	MaxImageSize = 2 * 1024 * 1024
	MaxPDFSize   = 5 * 1024 * 1024
)

// Width caps per asset category. Aspect ratio is preserved.
const (
	logoMaxWidth      = 400
	photoMaxWidth     = 600
	flowchartMaxWidth = 800
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
}

// Upload is a raw uploaded file.
type Upload struct {
	Name string
	Data []byte
}

// Handler validates and processes uploaded assets for a document: company
// logos, equipment photos and flowcharts. Raster uploads are flattened onto
// white, width-capped and re-encoded as base64 PNG so exporters can embed
// them without touching the filesystem.
type Handler struct {
	logger *slog.Logger

	logo       *models.AssetRecord
	photos     []models.AssetRecord
	flowcharts []models.AssetRecord
}

// NewHandler creates an asset handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// validate checks extension and size for the given upload kind.
func validate(up Upload, kind string) error {
	ext := strings.ToLower(filepath.Ext(up.Name))

	switch kind {
	case "image":
		if !imageExtensions[ext] {
			return &domain.ValidationError{Message: "invalid image format, allowed: .png, .jpg, .jpeg, .gif, .bmp"}
		}
		if len(up.Data) > MaxImageSize {
			return &domain.ValidationError{Message: fmt.Sprintf("image too large, maximum size: %s", FormatFileSize(MaxImageSize))}
		}
	case "pdf":
		if ext != ".pdf" {
			return &domain.ValidationError{Message: "invalid document format, only PDF allowed"}
		}
		if len(up.Data) > MaxPDFSize {
			return &domain.ValidationError{Message: fmt.Sprintf("PDF too large, maximum size: %s", FormatFileSize(MaxPDFSize))}
		}
	}
	return nil
}

// ProcessImage decodes, normalizes and re-encodes an image upload. Images
// wider than maxWidth are scaled down; transparency is flattened onto a
// white background.
func (h *Handler) ProcessImage(up Upload, maxWidth int) (*models.AssetRecord, error) {
	src, format, err := image.Decode(bytes.NewReader(up.Data))
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("cannot decode image '%s': %v", up.Name, err)}
	}

	flat := flattenOntoWhite(src)

	bounds := flat.Bounds()
	if width := bounds.Dx(); width > maxWidth {
		height := bounds.Dy() * maxWidth / width
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), flat, bounds, xdraw.Over, nil)
		flat = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return nil, fmt.Errorf("encoding image '%s': %w", up.Name, err)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(up.Name)))
	if mimeType == "" {
		mimeType = "image/png"
	}

	return &models.AssetRecord{
		Name:     up.Name,
		Format:   strings.ToUpper(format),
		Size:     int64(len(up.Data)),
		Width:    flat.Bounds().Dx(),
		Height:   flat.Bounds().Dy(),
		Base64:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		MIMEType: mimeType,
	}, nil
}

// ProcessLogo validates and processes a company logo upload.
func (h *Handler) ProcessLogo(up Upload) (*models.AssetRecord, error) {
	if err := validate(up, "image"); err != nil {
		h.logger.Error("logo validation failed", "name", up.Name, "error", err)
		return nil, err
	}

	logo, err := h.ProcessImage(up, logoMaxWidth)
	if err != nil {
		return nil, err
	}

	h.logo = logo
	h.logger.Info("logo processed", "name", logo.Name, "width", logo.Width)
	return logo, nil
}

// ProcessEquipmentPhotos processes a batch of equipment photo uploads.
// Invalid or undecodable uploads are skipped with a warning; the surviving
// photos replace any previous batch.
func (h *Handler) ProcessEquipmentPhotos(uploads []Upload) []models.AssetRecord {
	photos := make([]models.AssetRecord, 0, len(uploads))

	for _, up := range uploads {
		if err := validate(up, "image"); err != nil {
			h.logger.Warn("equipment photo rejected", "name", up.Name, "error", err)
			continue
		}
		photo, err := h.ProcessImage(up, photoMaxWidth)
		if err != nil {
			h.logger.Warn("equipment photo rejected", "name", up.Name, "error", err)
			continue
		}
		photos = append(photos, *photo)
		h.logger.Info("equipment photo processed", "name", photo.Name)
	}

	h.photos = photos
	return photos
}

// ProcessFlowchart processes a flowchart upload, which may be an image or a
// PDF. PDFs are kept as raw bytes.
func (h *Handler) ProcessFlowchart(up Upload) (*models.AssetRecord, error) {
	ext := strings.ToLower(filepath.Ext(up.Name))

	if imageExtensions[ext] {
		if err := validate(up, "image"); err != nil {
			h.logger.Error("flowchart validation failed", "name", up.Name, "error", err)
			return nil, err
		}
		chart, err := h.ProcessImage(up, flowchartMaxWidth)
		if err != nil {
			return nil, err
		}
		h.flowcharts = append(h.flowcharts, *chart)
		h.logger.Info("flowchart processed", "name", chart.Name)
		return chart, nil
	}

	if ext == ".pdf" {
		if err := validate(up, "pdf"); err != nil {
			h.logger.Error("flowchart PDF validation failed", "name", up.Name, "error", err)
			return nil, err
		}
		chart := &models.AssetRecord{
			Name:     up.Name,
			Format:   "PDF",
			Size:     int64(len(up.Data)),
			Raw:      append([]byte(nil), up.Data...),
			MIMEType: "application/pdf",
		}
		h.flowcharts = append(h.flowcharts, *chart)
		h.logger.Info("flowchart PDF processed", "name", chart.Name)
		return chart, nil
	}

	return nil, &domain.ValidationError{Message: "flowchart must be an image or a PDF"}
}

// AttachToDocument copies the processed assets into the document metadata.
func (h *Handler) AttachToDocument(doc *models.Document) {
	if h.logo != nil {
		logo := h.logo.Clone()
		doc.Metadata.CompanyLogo = &logo
	}
	if len(h.photos) > 0 {
		doc.Metadata.EquipmentPhotos = append([]models.AssetRecord(nil), h.photos...)
	}
	if len(h.flowcharts) > 0 {
		doc.Metadata.Flowcharts = append([]models.AssetRecord(nil), h.flowcharts...)
	}

	h.logger.Info("assets attached to document",
		"document_id", doc.ID,
		"photos", len(h.photos),
		"flowcharts", len(h.flowcharts))
}

// ClearUploads drops processed uploads for one category, or all of them
// when category is empty.
func (h *Handler) ClearUploads(category string) {
	switch category {
	case "logo":
		h.logo = nil
	case "equipment_photos":
		h.photos = nil
	case "flowcharts":
		h.flowcharts = nil
	case "":
		h.logo = nil
		h.photos = nil
		h.flowcharts = nil
	}
}

// flattenOntoWhite composites the image over a white background, removing
// any alpha channel.
func flattenOntoWhite(src image.Image) draw.Image {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	return dst
}

// FormatFileSize renders a byte count as a human readable string.
func FormatFileSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
