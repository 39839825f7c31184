package ingest

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ChunkExcel extracts one text chunk per data row from an Excel workbook.
// The first row of the first sheet is treated as the header; each following
// row becomes "header: value | header: value" with empty cells skipped.
func ChunkExcel(content []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoContent, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoContent
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoContent, err)
	}
	if len(rows) < 2 {
		return nil, ErrNoContent
	}

	headers := uniqueHeaders(rows[0])

	var chunks []string
	for _, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" || i >= len(row) {
				continue
			}
			values[header] = row[i]
		}
		chunk := formatRow(headers, values)
		if chunk == "" {
			continue
		}
		chunks = append(chunks, chunk)
	}

	if len(chunks) == 0 {
		return nil, ErrNoContent
	}
	return chunks, nil
}

// uniqueHeaders disambiguates repeated column names the way spreadsheet
// tooling does: a second "Price" column becomes "Price.1", a third "Price.2".
func uniqueHeaders(row []string) []string {
	seen := make(map[string]int, len(row))
	out := make([]string, len(row))
	for i, header := range row {
		if header == "" {
			continue
		}
		n := seen[header]
		seen[header] = n + 1
		if n > 0 {
			header = fmt.Sprintf("%s.%d", header, n)
		}
		out[i] = header
	}
	return out
}
