package export

import (
	"fmt"
	"strings"

	"sopgen/internal/domain"
)

// Format is an export target format tag.
type Format string

const (
	FormatDocx     Format = "docx"
	FormatPDF      Format = "pdf"
	FormatHTML     Format = "html"
	FormatExcel    Format = "excel"
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported format tag.
func Formats() []Format {
	return []Format{FormatDocx, FormatPDF, FormatHTML, FormatExcel, FormatMarkdown}
}

// ParseFormat normalizes a format tag (case-insensitive, "xlsx" accepted
// as the spreadsheet alias) and rejects anything else with a validation
// error.
func ParseFormat(tag string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "docx":
		return FormatDocx, nil
	case "pdf":
		return FormatPDF, nil
	case "html":
		return FormatHTML, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", &domain.ValidationError{
			Message: fmt.Sprintf("unsupported format: %s", tag),
		}
	}
}

// ContentType returns the MIME type for the format's output bytes.
func (f Format) ContentType() string {
	switch f {
	case FormatDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Extension returns the file extension for download filenames.
func (f Format) Extension() string {
	switch f {
	case FormatExcel:
		return "xlsx"
	case FormatMarkdown:
		return "md"
	default:
		return string(f)
	}
}
