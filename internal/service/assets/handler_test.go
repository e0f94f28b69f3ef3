package assets

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"sopgen/internal/domain"
	models "sopgen/internal/domain/models/sop"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// makePNG builds a PNG of the given size. When transparent is true the
// whole image has zero alpha.
func makePNG(t *testing.T, width, height int, transparent bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if !transparent {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func decodeRecord(t *testing.T, rec *models.AssetRecord) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(rec.Base64)
	if err != nil {
		t.Fatalf("decoding base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	return img
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		up      Upload
		kind    string
		wantErr bool
	}{
		{"valid png", Upload{Name: "logo.png", Data: make([]byte, 100)}, "image", false},
		{"valid jpeg", Upload{Name: "photo.JPEG", Data: make([]byte, 100)}, "image", false},
		{"bad extension", Upload{Name: "notes.txt", Data: make([]byte, 100)}, "image", true},
		{"image too large", Upload{Name: "big.png", Data: make([]byte, MaxImageSize+1)}, "image", true},
		{"valid pdf", Upload{Name: "flow.pdf", Data: make([]byte, 100)}, "pdf", false},
		{"pdf too large", Upload{Name: "big.pdf", Data: make([]byte, MaxPDFSize+1)}, "pdf", true},
		{"image as pdf", Upload{Name: "flow.png", Data: make([]byte, 100)}, "pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(tt.up, tt.kind)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error is not a validation error: %v", err)
			}
		})
	}
}

func TestProcessImageResizes(t *testing.T) {
	h := NewHandler(testLogger())

	rec, err := h.ProcessImage(Upload{Name: "wide.png", Data: makePNG(t, 800, 200, false)}, 400)
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	if rec.Width != 400 || rec.Height != 100 {
		t.Errorf("dimensions = %dx%d, want 400x100", rec.Width, rec.Height)
	}
	if rec.Format != "PNG" || rec.MIMEType != "image/png" {
		t.Errorf("format/mime = %q / %q", rec.Format, rec.MIMEType)
	}

	img := decodeRecord(t, rec)
	if got := img.Bounds().Dx(); got != 400 {
		t.Errorf("encoded width = %d", got)
	}

	// Small images keep their size.
	rec, err = h.ProcessImage(Upload{Name: "small.png", Data: makePNG(t, 120, 80, false)}, 400)
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	if rec.Width != 120 || rec.Height != 80 {
		t.Errorf("small image resized to %dx%d", rec.Width, rec.Height)
	}
}

func TestProcessImageFlattensTransparency(t *testing.T) {
	h := NewHandler(testLogger())

	rec, err := h.ProcessImage(Upload{Name: "clear.png", Data: makePNG(t, 10, 10, true)}, 400)
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}

	img := decodeRecord(t, rec)
	r, g, b, a := img.At(5, 5).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("transparent pixel = %v %v %v %v, want opaque white", r, g, b, a)
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	h := NewHandler(testLogger())
	if _, err := h.ProcessImage(Upload{Name: "x.png", Data: []byte("not an image")}, 400); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestProcessLogoCapsWidth(t *testing.T) {
	h := NewHandler(testLogger())

	logo, err := h.ProcessLogo(Upload{Name: "logo.png", Data: makePNG(t, 1000, 500, false)})
	if err != nil {
		t.Fatalf("ProcessLogo: %v", err)
	}
	if logo.Width != 400 {
		t.Errorf("logo width = %d, want 400", logo.Width)
	}
}

func TestProcessEquipmentPhotosSkipsInvalid(t *testing.T) {
	h := NewHandler(testLogger())

	photos := h.ProcessEquipmentPhotos([]Upload{
		{Name: "rig.png", Data: makePNG(t, 700, 700, false)},
		{Name: "notes.txt", Data: []byte("nope")},
		{Name: "broken.png", Data: []byte("nope")},
	})

	if len(photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(photos))
	}
	if photos[0].Width != 600 {
		t.Errorf("photo width = %d, want 600", photos[0].Width)
	}
}

func TestProcessFlowchart(t *testing.T) {
	h := NewHandler(testLogger())

	chart, err := h.ProcessFlowchart(Upload{Name: "flow.png", Data: makePNG(t, 900, 300, false)})
	if err != nil {
		t.Fatalf("ProcessFlowchart image: %v", err)
	}
	if chart.Width != 800 {
		t.Errorf("flowchart width = %d, want 800", chart.Width)
	}

	pdfBytes := []byte("%PDF-1.4 fake")
	chart, err = h.ProcessFlowchart(Upload{Name: "flow.pdf", Data: pdfBytes})
	if err != nil {
		t.Fatalf("ProcessFlowchart pdf: %v", err)
	}
	if !chart.IsPDF() || !bytes.Equal(chart.Raw, pdfBytes) {
		t.Errorf("pdf flowchart = %+v", chart)
	}
	if chart.MIMEType != "application/pdf" {
		t.Errorf("pdf mime = %q", chart.MIMEType)
	}

	if _, err := h.ProcessFlowchart(Upload{Name: "flow.docx", Data: []byte("x")}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unexpected error for bad type: %v", err)
	}
}

func TestAttachToDocument(t *testing.T) {
	h := NewHandler(testLogger())

	if _, err := h.ProcessLogo(Upload{Name: "logo.png", Data: makePNG(t, 100, 100, false)}); err != nil {
		t.Fatalf("ProcessLogo: %v", err)
	}
	h.ProcessEquipmentPhotos([]Upload{{Name: "rig.png", Data: makePNG(t, 100, 100, false)}})
	if _, err := h.ProcessFlowchart(Upload{Name: "flow.pdf", Data: []byte("%PDF-")}); err != nil {
		t.Fatalf("ProcessFlowchart: %v", err)
	}

	doc := models.NewDocument("Test", "SOP-001", "alice")
	h.AttachToDocument(doc)

	if doc.Metadata.CompanyLogo == nil || doc.Metadata.CompanyLogo.Name != "logo.png" {
		t.Errorf("logo not attached: %+v", doc.Metadata.CompanyLogo)
	}
	if len(doc.Metadata.EquipmentPhotos) != 1 || len(doc.Metadata.Flowcharts) != 1 {
		t.Errorf("photos/flowcharts = %d/%d", len(doc.Metadata.EquipmentPhotos), len(doc.Metadata.Flowcharts))
	}

	h.ClearUploads("")
	doc2 := models.NewDocument("Other", "SOP-002", "bob")
	h.AttachToDocument(doc2)
	if doc2.Metadata.CompanyLogo != nil || len(doc2.Metadata.EquipmentPhotos) != 0 {
		t.Error("cleared uploads still attached")
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
