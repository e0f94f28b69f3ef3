package export

import (
	"fmt"
	"strings"

	models "sopgen/internal/domain/models/sop"
)

// renderMarkdown produces the canonical markdown projection: title
// heading, bold-label metadata block, horizontal rule, the section walk,
// and a generation footer. Sections with empty or whitespace-only content
// are skipped in every format, and this walk is where that rule lives for
// the text-shaped targets.
func (e *Exporter) renderMarkdown(doc *models.Document) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# %s\n", doc.Title))

	if doc.DocNumber != "" {
		lines = append(lines, fmt.Sprintf("**Document Number:** %s\n", doc.DocNumber))
	}
	if doc.Metadata.Company != "" {
		lines = append(lines, fmt.Sprintf("**Company:** %s\n", doc.Metadata.Company))
	}
	if doc.Metadata.Revision != "" {
		lines = append(lines, fmt.Sprintf("**Revision:** %s\n", doc.Metadata.Revision))
	}
	if doc.Metadata.EffectiveDate != "" {
		lines = append(lines, fmt.Sprintf("**Effective Date:** %s\n", doc.Metadata.EffectiveDate))
	}

	lines = append(lines, "\n---\n\n")

	for _, sec := range doc.Sections {
		if strings.TrimSpace(sec.Content) == "" {
			continue
		}

		lines = append(lines, fmt.Sprintf("## %s\n", sec.Title))

		switch sec.ContentType {
		case models.ContentImage:
			lines = append(lines, fmt.Sprintf("![%s](%s)", sec.Title, sec.Content))
		case models.ContentFlowchart:
			lines = append(lines, fmt.Sprintf("```mermaid\n%s\n```", sec.Content))
		case models.ContentLatex:
			lines = append(lines, fmt.Sprintf("$$\n%s\n$$", sec.Content))
		default:
			// text and table content pass through verbatim; table markup
			// is assumed to already be markdown or CSV shaped
			lines = append(lines, sec.Content)
		}

		lines = append(lines, "\n\n")
	}

	lines = append(lines, "---\n")
	lines = append(lines, fmt.Sprintf("\n*Document generated on %s*\n", e.now().Format("2006-01-02 15:04:05")))
	if doc.CreatedBy != "" {
		lines = append(lines, fmt.Sprintf("*Created by: %s*\n", doc.CreatedBy))
	}

	return strings.Join(lines, "\n")
}
