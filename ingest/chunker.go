package ingest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/poiesic/docquery/core"
)

// DetectFileType maps a filename extension to a FileType.
// Returns ErrUnsupportedType for anything other than Excel or JSON.
func DetectFileType(filename string) (core.FileType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return core.FileTypeExcel, nil
	case ".json":
		return core.FileTypeJSON, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, filename)
	}
}

// formatRow renders a row as "key: value | key: value".
// Keys must already be in the desired order. Empty values are skipped.
func formatRow(keys []string, values map[string]string) string {
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := values[k]
		if !ok || v == "" {
			continue
		}
		pairs = append(pairs, k+": "+v)
	}
	return strings.Join(pairs, " | ")
}

// formatJSONValue renders a decoded JSON value for inclusion in a chunk.
// Scalars render plainly; nested arrays and objects keep their JSON form.
func formatJSONValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}
