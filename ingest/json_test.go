package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkJSON_ArrayOfObjects(t *testing.T) {
	content := []byte(`[
		{"name": "Widget", "price": 9.99},
		{"name": "Gadget", "price": 4.5}
	]`)

	chunks, err := ChunkJSON(content)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "name: Widget | price: 9.99", chunks[0])
	assert.Equal(t, "name: Gadget | price: 4.5", chunks[1])
}

func TestChunkJSON_SortedKeys(t *testing.T) {
	// Key order in the source must not matter
	a, err := ChunkJSON([]byte(`[{"b": "2", "a": "1"}]`))
	require.NoError(t, err)
	b, err := ChunkJSON([]byte(`[{"a": "1", "b": "2"}]`))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "a: 1 | b: 2", a[0])
}

func TestChunkJSON_ArrayOfScalars(t *testing.T) {
	chunks, err := ChunkJSON([]byte(`["alpha", 42, true]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "42", "true"}, chunks)
}

func TestChunkJSON_SingleObject(t *testing.T) {
	chunks, err := ChunkJSON([]byte(`{"city": "Jakarta", "population": 10500000}`))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "city: Jakarta | population: 10500000", chunks[0])
}

func TestChunkJSON_BareScalar(t *testing.T) {
	chunks, err := ChunkJSON([]byte(`"just a string"`))
	require.NoError(t, err)
	assert.Equal(t, []string{"just a string"}, chunks)
}

func TestChunkJSON_NullValuesSkipped(t *testing.T) {
	chunks, err := ChunkJSON([]byte(`[{"name": "Widget", "notes": null}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"name: Widget"}, chunks)
}

func TestChunkJSON_Invalid(t *testing.T) {
	_, err := ChunkJSON([]byte(`{not json`))
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestChunkJSON_EmptyArray(t *testing.T) {
	_, err := ChunkJSON([]byte(`[]`))
	assert.ErrorIs(t, err, ErrNoContent)
}
