package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fumiama/go-docx"

	models "sopgen/internal/domain/models/sop"
)

const (
	docxTitleSize   = "40"
	docxHeadingSize = "28"
	headingColor    = "2C3E50"
)

// WordRenderer writes the word-processor projection with go-docx. A
// failure to embed any one image skips that image and continues; only a
// failure to produce the archive itself surfaces as an error (and the
// exporter then falls back to markdown bytes).
type WordRenderer struct {
	now func() time.Time
}

// NewWordRenderer creates the docx backend.
func NewWordRenderer(now func() time.Time) *WordRenderer {
	if now == nil {
		now = time.Now
	}
	return &WordRenderer{now: now}
}

// Name implements the Renderer interface.
func (r *WordRenderer) Name() string { return "docx" }

// Available implements the Renderer interface. The writer is compiled in,
// so the probe always succeeds; it exists so the exporter can treat every
// backend uniformly.
func (r *WordRenderer) Available() bool { return true }

// Render implements the Renderer interface.
func (r *WordRenderer) Render(doc *models.Document) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	// Company logo centered at the top, skipped on any decode failure.
	if logo := doc.Metadata.CompanyLogo; logo != nil && logo.HasImageData() {
		if img, err := base64.StdEncoding.DecodeString(logo.Base64); err == nil {
			p := w.AddParagraph().Justification("center")
			_, _ = p.AddInlineDrawing(img)
			w.AddParagraph()
		}
	}

	title := w.AddParagraph().Justification("center")
	title.AddText(doc.Title).Size(docxTitleSize).Bold().Color(headingColor)
	w.AddParagraph()

	r.addInfoTable(w, doc)

	for _, sec := range doc.Sections {
		if strings.TrimSpace(sec.Content) == "" {
			continue
		}

		heading := w.AddParagraph()
		heading.AddText(sec.Title).Size(docxHeadingSize).Bold().Color(headingColor)

		switch sec.ContentType {
		case models.ContentImage:
			r.addImageSection(w, &sec)
		case models.ContentTable:
			r.addTable(w, sec.Content)
		case models.ContentFlowchart:
			w.AddParagraph().AddText(fmt.Sprintf("[Flowchart: %s]", sec.Title))
			w.AddParagraph().AddText(sec.Content)
		case models.ContentLatex:
			w.AddParagraph().AddText("Equation:")
			w.AddParagraph().AddText(sec.Content)
		default:
			w.AddParagraph().AddText(sec.Content)
		}

		w.AddParagraph()
	}

	r.addGallery(w, "Equipment Images", "Figure", doc.Metadata.EquipmentPhotos)
	r.addGallery(w, "Process Flowcharts", "Flowchart", doc.Metadata.Flowcharts)

	footer := w.AddParagraph()
	footer.AddText(fmt.Sprintf("Generated on %s", r.now().Format("2006-01-02 15:04:05"))).Italic()

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx archive: %w", err)
	}
	return buf.Bytes(), nil
}

// addInfoTable writes the two-column key/value table from doc_number and
// the non-empty metadata pairs (standards and description excluded by
// Metadata.InfoPairs).
func (r *WordRenderer) addInfoTable(w *docx.Docx, doc *models.Document) {
	pairs := doc.Metadata.InfoPairs()
	if doc.DocNumber != "" {
		pairs = append([]models.InfoPair{{Label: "Document Number", Value: doc.DocNumber}}, pairs...)
	}
	if len(pairs) == 0 {
		return
	}

	tbl := w.AddTable(len(pairs), 2, 8200, nil)
	for i, pair := range pairs {
		row := tbl.TableRows[i]
		row.TableCells[0].AddParagraph().AddText(pair.Label).Bold()
		row.TableCells[1].AddParagraph().AddText(pair.Value)
	}
	w.AddParagraph()
}

// addImageSection embeds the image when content names a readable local
// path, otherwise falls back to bracketed placeholder text.
func (r *WordRenderer) addImageSection(w *docx.Docx, sec *models.Section) {
	if _, err := os.Stat(sec.Content); err == nil {
		p := w.AddParagraph()
		if _, err := p.AddInlineDrawingFrom(sec.Content); err == nil {
			return
		}
		p.AddText(fmt.Sprintf("[Image: %s - Error loading]", sec.Content))
		return
	}
	w.AddParagraph().AddText(fmt.Sprintf("[Image: %s]", sec.Content))
}

// addTable re-renders table content as a native table; unparseable
// content degrades to a verbatim paragraph.
func (r *WordRenderer) addTable(w *docx.Docx, content string) {
	parsed := parseTable(content)
	if len(parsed.Headers) == 0 || len(parsed.Rows) == 0 {
		w.AddParagraph().AddText(content)
		return
	}

	tbl := w.AddTable(1+len(parsed.Rows), len(parsed.Headers), 8200, nil)
	for j, header := range parsed.Headers {
		tbl.TableRows[0].TableCells[j].AddParagraph().AddText(header).Bold()
	}
	for i, row := range parsed.Rows {
		for j, cell := range row {
			if j < len(parsed.Headers) {
				tbl.TableRows[i+1].TableCells[j].AddParagraph().AddText(cell)
			}
		}
	}
}

// addGallery appends one captioned picture per asset. PDFs become a
// reference line; any image that fails to decode is skipped.
func (r *WordRenderer) addGallery(w *docx.Docx, heading, captionPrefix string, assets []models.AssetRecord) {
	if len(assets) == 0 {
		return
	}

	h := w.AddParagraph()
	h.AddText(heading).Size(docxHeadingSize).Bold().Color(headingColor)

	for _, a := range assets {
		if a.IsPDF() {
			w.AddParagraph().AddText(fmt.Sprintf("[PDF %s: %s]", captionPrefix, a.Name))
			continue
		}
		if !a.HasImageData() {
			continue
		}
		img, err := base64.StdEncoding.DecodeString(a.Base64)
		if err != nil {
			continue
		}
		w.AddParagraph().AddText(fmt.Sprintf("%s: %s", captionPrefix, a.Name))
		p := w.AddParagraph()
		if _, err := p.AddInlineDrawing(img); err != nil {
			p.AddText(fmt.Sprintf("[%s unavailable: %s]", captionPrefix, a.Name))
		}
		w.AddParagraph()
	}
}
