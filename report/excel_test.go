package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	table := &Table{
		Columns: []string{"name", "price"},
		Rows: []map[string]string{
			{"name": "Widget", "price": "9.99"},
			{"name": "Gadget"},
		},
	}

	data, err := WriteWorkbook(table)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"name", "price"}, rows[0])
	assert.Equal(t, []string{"Widget", "9.99"}, rows[1])
	assert.Equal(t, "Gadget", rows[2][0])
}

func TestWriteWorkbook_Empty(t *testing.T) {
	_, err := WriteWorkbook(nil)
	assert.Error(t, err)

	_, err = WriteWorkbook(&Table{})
	assert.Error(t, err)
}
