// Command seed builds a demo SOP end to end: it instantiates a built-in
// template, fills every section with generated content, attaches a
// placeholder logo, approves the document, and writes every export
// format to an output directory.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	sopSvc "sopgen/internal/domain/services/sop"
	"sopgen/internal/repository/jsonfile"
	"sopgen/internal/service/assets"
	"sopgen/internal/service/export"
	"sopgen/internal/service/generate"
	mockProvider "sopgen/internal/service/generate/providers/mock"
	serviceSOP "sopgen/internal/service/sop"
	"sopgen/internal/service/template"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		dataDir     = flag.String("data", "data/documents", "document store directory")
		templateDir = flag.String("templates", "data/templates", "custom template directory")
		outDir      = flag.String("out", "out", "export output directory")
		templName   = flag.String("template", "pv_module_qualification", "built-in template to instantiate")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	store, err := jsonfile.NewStore(*dataDir, logger)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	templates, err := template.NewManager(*templateDir, logger)
	if err != nil {
		log.Fatalf("Failed to initialize template library: %v", err)
	}

	docService := serviceSOP.NewDocumentService(store, templates, logger)
	generator := generate.NewService(logger, mockProvider.NewProvider())
	assetService := assets.NewService(store, logger)
	exporter := export.New(logger)

	doc, err := docService.CreateDocument(ctx, &sopSvc.CreateDocumentRequest{
		Title:     "Thermal Cycling Qualification of PV Modules",
		DocNumber: "SOP-PV-001",
		CreatedBy: "seed",
		Template:  *templName,
	})
	if err != nil {
		log.Fatalf("Failed to create document: %v", err)
	}
	logger.Info("document created", "id", doc.ID, "sections", len(doc.Sections))

	for _, sec := range doc.Sections {
		if sec.Content != "" {
			continue
		}
		content, err := generator.GenerateSectionContent(ctx, doc, sec.Title, "")
		if err != nil {
			log.Fatalf("Failed to generate %q: %v", sec.Title, err)
		}
		doc, err = docService.UpdateSection(ctx, &sopSvc.UpdateSectionRequest{
			DocumentID:  doc.ID,
			Title:       sec.Title,
			Content:     content,
			AIGenerated: true,
		})
		if err != nil {
			log.Fatalf("Failed to update %q: %v", sec.Title, err)
		}
	}

	doc, err = assetService.AttachLogo(ctx, doc.ID, assets.Upload{
		Name: "logo.png",
		Data: placeholderLogo(),
	})
	if err != nil {
		log.Fatalf("Failed to attach logo: %v", err)
	}

	if _, err := docService.LogVersion(ctx, &sopSvc.LogVersionRequest{
		DocumentID: doc.ID,
		User:       "seed",
		Role:       "editor",
		Changes:    "Seeded demo content for every section",
	}); err != nil {
		log.Fatalf("Failed to log version: %v", err)
	}
	doc, err = docService.ApproveDocument(ctx, doc.ID, "seed-approver")
	if err != nil {
		log.Fatalf("Failed to approve document: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	for _, format := range export.Formats() {
		data, err := exporter.Export(doc, format)
		if err != nil {
			logger.Warn("export skipped", "format", format, "error", err)
			continue
		}
		name := fmt.Sprintf("%s.%s", doc.DocNumber, format.Extension())
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		logger.Info("exported", "format", format, "path", path, "bytes", len(data))
	}

	logger.Info("seed complete", "id", doc.ID, "approved", doc.Approved)
}

// placeholderLogo renders a small two-tone PNG so the export pipeline
// has a real image to embed.
func placeholderLogo() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 240, 80))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0x1f, G: 0x4e, B: 0x79, A: 0xff}), image.Point{}, draw.Src)
	band := image.Rect(0, 56, 240, 80)
	draw.Draw(img, band, image.NewUniform(color.RGBA{R: 0xf5, G: 0xa6, B: 0x23, A: 0xff}), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
