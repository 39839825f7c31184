package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/core"
)

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		filename string
		expected core.FileType
		wantErr  bool
	}{
		{"report.xlsx", core.FileTypeExcel, false},
		{"legacy.xls", core.FileTypeExcel, false},
		{"DATA.XLSX", core.FileTypeExcel, false},
		{"data.json", core.FileTypeJSON, false},
		{"notes.txt", 0, true},
		{"archive.csv", 0, true},
		{"noextension", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ft, err := DetectFileType(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ft)
		})
	}
}

func TestFormatRow(t *testing.T) {
	keys := []string{"name", "price", "stock"}
	values := map[string]string{
		"name":  "Widget",
		"price": "9.99",
		"stock": "12",
	}

	assert.Equal(t, "name: Widget | price: 9.99 | stock: 12", formatRow(keys, values))
}

func TestFormatRow_SkipsEmptyValues(t *testing.T) {
	keys := []string{"name", "price", "stock"}
	values := map[string]string{
		"name":  "Widget",
		"stock": "",
	}

	assert.Equal(t, "name: Widget", formatRow(keys, values))
}

func TestFormatJSONValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string", "hello", "hello"},
		{"number", json.Number("42.5"), "42.5"},
		{"bool", true, "true"},
		{"nil", nil, ""},
		{"nested object", map[string]any{"a": "b"}, `{"a":"b"}`},
		{"nested array", []any{"x", "y"}, `["x","y"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatJSONValue(tt.value))
		})
	}
}
