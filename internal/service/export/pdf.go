package export

import (
	"bytes"
	"fmt"
	"os/exec"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// pdfFallbackComment prefixes the HTML bytes returned when no page
// converter is available at runtime.
const pdfFallbackComment = "<!-- PDF generation requires the wkhtmltopdf binary -->\n"

// WkhtmltopdfConverter converts the HTML projection to PDF through the
// wkhtmltopdf binary. The binary is probed once at construction; an
// absent binary simply marks the converter unavailable.
type WkhtmltopdfConverter struct {
	available bool
}

// NewWkhtmltopdfConverter probes for the wkhtmltopdf binary. A non-empty
// path overrides the PATH lookup.
func NewWkhtmltopdfConverter(path string) *WkhtmltopdfConverter {
	if path != "" {
		wkhtmltopdf.SetPath(path)
		return &WkhtmltopdfConverter{available: true}
	}
	_, err := exec.LookPath("wkhtmltopdf")
	return &WkhtmltopdfConverter{available: err == nil}
}

// Name implements the PageConverter interface.
func (c *WkhtmltopdfConverter) Name() string { return "wkhtmltopdf" }

// Available implements the PageConverter interface.
func (c *WkhtmltopdfConverter) Available() bool { return c.available }

// Convert implements the PageConverter interface.
func (c *WkhtmltopdfConverter) Convert(html []byte) ([]byte, error) {
	gen, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("create pdf generator: %w", err)
	}

	gen.AddPage(wkhtmltopdf.NewPageReader(bytes.NewReader(html)))
	if err := gen.Create(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return gen.Bytes(), nil
}
