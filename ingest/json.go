package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// ChunkJSON extracts text chunks from a JSON file.
//
// A top-level array yields one chunk per element: objects become
// "key: value | key: value" rows, scalars are rendered directly.
// A single top-level object becomes one chunk, as does a bare scalar.
// Object keys are emitted in sorted order so identical content always
// produces identical chunks.
func ChunkJSON(content []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoContent, err)
	}

	var chunks []string
	switch val := data.(type) {
	case []any:
		for _, item := range val {
			chunk := chunkJSONValue(item)
			if chunk == "" {
				continue
			}
			chunks = append(chunks, chunk)
		}
	default:
		chunk := chunkJSONValue(val)
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	if len(chunks) == 0 {
		return nil, ErrNoContent
	}
	return chunks, nil
}

// chunkJSONValue renders a single decoded JSON value as a chunk.
func chunkJSONValue(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return formatJSONValue(v)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]string, len(obj))
	for _, k := range keys {
		values[k] = formatJSONValue(obj[k])
	}
	return formatRow(keys, values)
}
