package export

import "strings"

// Table is the parsed form of a table section's content, shared by the
// word-processor and spreadsheet renderings.
type Table struct {
	Headers []string
	Rows    [][]string
}

// parseTable interprets a table section's content. Lines are trimmed and
// blanks dropped. A first line starting with a pipe means markdown table
// markup: line 0 is the header, line 1 (the separator) is discarded, and
// every remaining pipe-prefixed line is a data row. Anything else is
// treated as CSV: line 0 is the header, each later line a data row. Rows
// shorter than the header are tolerated as-is.
func parseTable(content string) Table {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return Table{}
	}

	if strings.HasPrefix(lines[0], "|") {
		tbl := Table{Headers: splitPipeRow(lines[0])}
		for i := 2; i < len(lines); i++ {
			if strings.HasPrefix(lines[i], "|") {
				tbl.Rows = append(tbl.Rows, splitPipeRow(lines[i]))
			}
		}
		return tbl
	}

	tbl := Table{Headers: splitCSVRow(lines[0])}
	for _, line := range lines[1:] {
		tbl.Rows = append(tbl.Rows, splitCSVRow(line))
	}
	return tbl
}

func splitPipeRow(line string) []string {
	line = strings.Trim(line, "|")
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func splitCSVRow(line string) []string {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
