package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	models "sopgen/internal/domain/models/sop"
)

// worksheetNameLimit is the hard cap spreadsheet formats place on sheet
// names.
const worksheetNameLimit = 31

// SheetRenderer writes the spreadsheet projection with excelize: an
// Overview sheet plus one worksheet per table section.
type SheetRenderer struct{}

// NewSheetRenderer creates the xlsx backend.
func NewSheetRenderer() *SheetRenderer { return &SheetRenderer{} }

// Name implements the Renderer interface.
func (r *SheetRenderer) Name() string { return "xlsx" }

// Available implements the Renderer interface.
func (r *SheetRenderer) Available() bool { return true }

// Render implements the Renderer interface.
func (r *SheetRenderer) Render(doc *models.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const overview = "Overview"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return nil, fmt.Errorf("rename overview sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}

	overviewRows := [][2]string{
		{"SOP Title", doc.Title},
		{"Document Number", doc.DocNumber},
		{"Created", doc.CreatedAt.Format("2006-01-02")},
	}
	for i, row := range overviewRows {
		labelCell := fmt.Sprintf("A%d", i+1)
		f.SetCellValue(overview, labelCell, row[0])
		f.SetCellStyle(overview, labelCell, labelCell, bold)
		f.SetCellValue(overview, fmt.Sprintf("B%d", i+1), row[1])
	}

	sheetCount := 0
	for _, sec := range doc.Sections {
		if sec.ContentType != models.ContentTable || strings.TrimSpace(sec.Content) == "" {
			continue
		}
		sheetCount++
		name := worksheetName(sec.Title, sheetCount)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create worksheet %q: %w", name, err)
		}

		parsed := parseTable(sec.Content)
		for col, header := range parsed.Headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(name, cell, header)
			f.SetCellStyle(name, cell, cell, bold)
		}
		for rowIdx, row := range parsed.Rows {
			for colIdx, value := range row {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				f.SetCellValue(name, cell, value)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// worksheetName derives a sheet name that satisfies the 31-character
// limit: long titles are truncated to 25 characters and suffixed with the
// running table counter to stay unique within one export.
func worksheetName(title string, counter int) string {
	runes := []rune(title)
	if len(runes) > 25 {
		return fmt.Sprintf("%s_%d", string(runes[:25]), counter)
	}
	return title
}

// renderCSV is the spreadsheet downgrade: comma-separated text carrying
// the document identity and each table section verbatim.
func renderCSV(doc *models.Document) []byte {
	lines := []string{
		fmt.Sprintf("# %s", doc.Title),
		fmt.Sprintf("# Document Number: %s\n", doc.DocNumber),
	}
	for _, sec := range doc.Sections {
		if sec.ContentType == models.ContentTable && sec.Content != "" {
			lines = append(lines, fmt.Sprintf("\n# %s", sec.Title))
			lines = append(lines, sec.Content)
		}
	}
	return []byte(strings.Join(lines, "\n"))
}
