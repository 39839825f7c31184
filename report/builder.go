package report

import (
	"strconv"
	"strings"
	"time"
)

// Table is an ordered set of columns with string-valued rows.
type Table struct {
	// Columns in first-seen order across all rows.
	Columns []string

	// Rows map column name to cell value. Missing keys render as blanks.
	Rows []map[string]string
}

// Summary describes a query result for the single-row fallback report.
type Summary struct {
	Query         string
	Answer        string
	Language      string
	GeneratedAt   time.Time
	Sources       []string
	DocumentCount int
}

// BuildTable reconstructs tabular rows from retrieved context chunks.
//
// Chunks in "key: value | key: value" form contribute one row each, with
// columns ordered by first appearance. When no chunk is tabular, the
// summary becomes the report's only row.
func BuildTable(contextChunks []string, summary Summary) *Table {
	table := &Table{}
	seen := make(map[string]bool)

	for _, chunk := range contextChunks {
		if !strings.Contains(chunk, "|") {
			continue
		}

		row := make(map[string]string)
		for _, pair := range strings.Split(chunk, " | ") {
			key, value, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			row[key] = value
			if !seen[key] {
				seen[key] = true
				table.Columns = append(table.Columns, key)
			}
		}
		if len(row) > 0 {
			table.Rows = append(table.Rows, row)
		}
	}

	if len(table.Rows) > 0 {
		return table
	}

	return summaryTable(summary)
}

// summaryTable renders the fallback single-row report.
func summaryTable(s Summary) *Table {
	return &Table{
		Columns: []string{"Query", "Answer", "Language", "Generated_At", "Sources", "Document_Count"},
		Rows: []map[string]string{{
			"Query":          s.Query,
			"Answer":         s.Answer,
			"Language":       s.Language,
			"Generated_At":   s.GeneratedAt.UTC().Format(time.RFC3339),
			"Sources":        strings.Join(s.Sources, ", "),
			"Document_Count": strconv.Itoa(s.DocumentCount),
		}},
	}
}

// Filename returns the download name for a report generated at the
// given time, e.g. "rag-report-20250314-092653.xlsx".
func Filename(now time.Time) string {
	return "rag-report-" + now.UTC().Format("20060102-150405") + ".xlsx"
}
