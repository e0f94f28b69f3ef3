package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	models "sopgen/internal/domain/models/sop"
)

// htmlShell wraps the converted body in a fixed stylesheet template. The
// placeholders are title, logo block, body, equipment gallery, flowchart
// gallery.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body {
            font-family: Arial, Helvetica, sans-serif;
            line-height: 1.6;
            max-width: 900px;
            margin: 40px auto;
            padding: 20px;
            color: #333;
        }
        h1 {
            color: #2c3e50;
            border-bottom: 3px solid #3498db;
            padding-bottom: 10px;
        }
        h2 {
            color: #34495e;
            margin-top: 30px;
            border-bottom: 2px solid #bdc3c7;
            padding-bottom: 5px;
        }
        h3 {
            color: #555;
        }
        table {
            border-collapse: collapse;
            width: 100%%;
            margin: 20px 0;
        }
        table, th, td {
            border: 1px solid #ddd;
        }
        th {
            background-color: #3498db;
            color: white;
            padding: 12px;
            text-align: left;
        }
        td {
            padding: 10px;
        }
        tr:nth-child(even) {
            background-color: #f2f2f2;
        }
        code {
            background-color: #f4f4f4;
            padding: 2px 5px;
            border-radius: 3px;
        }
        pre {
            background-color: #f4f4f4;
            padding: 15px;
            border-radius: 5px;
            overflow-x: auto;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #bdc3c7;
            font-size: 0.9em;
            color: #7f8c8d;
        }
        img {
            max-width: 100%%;
            height: auto;
        }
    </style>
</head>
<body>
    %s
    %s
    %s
    %s
</body>
</html>`

var markdownConverter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()),
)

// renderHTML converts the markdown projection to body markup and wraps it
// in the stylesheet shell, appending the logo block and the asset
// galleries decoded from the metadata carriers.
func (e *Exporter) renderHTML(doc *models.Document) ([]byte, error) {
	md := e.renderMarkdown(doc)

	var body bytes.Buffer
	if err := markdownConverter.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("convert markdown to HTML: %w", err)
	}

	out := fmt.Sprintf(htmlShell,
		html.EscapeString(doc.Title),
		logoBlock(doc.Metadata.CompanyLogo),
		body.String(),
		galleryBlock("Equipment Images", doc.Metadata.EquipmentPhotos, 400),
		galleryBlock("Process Flowcharts", doc.Metadata.Flowcharts, 600),
	)
	return []byte(out), nil
}

func logoBlock(logo *models.AssetRecord) string {
	if logo == nil || !logo.HasImageData() {
		return ""
	}
	return fmt.Sprintf(
		`<div style="text-align: center; margin-bottom: 20px;"><img src="data:%s;base64,%s" style="max-width: 200px;" alt="Company Logo"></div>`,
		logo.MIMEType, logo.Base64,
	)
}

func galleryBlock(heading string, assets []models.AssetRecord, maxWidth int) string {
	if len(assets) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<h2>%s</h2><div style="display: flex; flex-wrap: wrap; gap: 20px;">`, heading)
	for _, a := range assets {
		switch {
		case a.IsPDF():
			fmt.Fprintf(&b, `<p>[PDF Flowchart: %s]</p>`, html.EscapeString(a.Name))
		case a.HasImageData():
			name := html.EscapeString(a.Name)
			fmt.Fprintf(&b,
				`<div><p><strong>%s</strong></p><img src="data:%s;base64,%s" style="max-width: %dpx;" alt="%s"></div>`,
				name, a.MIMEType, a.Base64, maxWidth, name,
			)
		}
	}
	b.WriteString(`</div>`)
	return b.String()
}
