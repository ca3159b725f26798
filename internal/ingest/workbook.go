package ingest

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Reader loads review rows from an .xlsx workbook
type Reader struct {
	sheet string // Empty means first sheet
}

// NewReader creates a workbook reader for the given sheet name
func NewReader(sheet string) *Reader {
	return &Reader{sheet: sheet}
}

// Read opens the workbook and returns its review rows in sheet order.
// A missing sheet or an unrecognizable header row is a structural error:
// no meaningful reconciliation is possible without the raw data.
func (r *Reader) Read(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	header := cells[0]
	fields := make([]string, len(header))
	recognized := 0
	for i, h := range header {
		fields[i] = CanonicalField(h)
		if _, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			recognized++
		}
	}
	if recognized == 0 {
		return nil, fmt.Errorf("sheet %q: header row has no recognized columns", sheet)
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		if isBlank(line) {
			continue
		}
		row := make(Row, len(fields))
		for i, field := range fields {
			if field == "" {
				continue
			}
			// Short rows read as empty cells, never as an error
			if i < len(line) {
				row[field] = line[i]
			} else {
				row[field] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// isBlank reports whether every cell in the line is empty or whitespace
func isBlank(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
