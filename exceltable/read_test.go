package exceltable

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"
	"github.com/xuri/excelize/v2"

	datagrid "github.com/domonda/go-datagrid"
)

func workbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"First Name", "Department"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"John", "Sales"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{"Harry", "Marketing"}))

	_, err := f.NewSheet("Empty")
	require.NoError(t, err)

	_, err = f.NewSheet("Numbers")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Numbers", "A1", &[]any{"id", "value"}))
	require.NoError(t, f.SetSheetRow("Numbers", "A2", &[]any{7, 1.5}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRead(t *testing.T) {
	sheets, err := Read(bytes.NewReader(workbook(t)), false, "id")
	require.NoError(t, err)
	require.Len(t, sheets, 2, "empty sheet skipped")

	assert.Equal(t, "Sheet1", sheets[0].Name)
	assert.Equal(t, []datagrid.Row{
		{"id": 1, "First Name": "John", "Department": "Sales"},
		{"id": 2, "First Name": "Harry", "Department": "Marketing"},
	}, sheets[0].Rows)

	assert.Equal(t, "Numbers", sheets[1].Name)
	assert.Equal(t, []datagrid.Row{{"id": "7", "value": "1.5"}}, sheets[1].Rows)
}

func TestReadSheet(t *testing.T) {
	data := workbook(t)

	rows, err := ReadSheet(bytes.NewReader(data), "", true, "id")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "first sheet")

	rows, err = ReadSheet(bytes.NewReader(data), "Numbers", true, "id")
	require.NoError(t, err)
	assert.Equal(t, "7", rows[0]["id"])

	_, err = ReadSheet(bytes.NewReader(data), "Empty", true, "id")
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = ReadSheet(bytes.NewReader(data), "Missing", true, "id")
	var notExist ErrSheetNotExist
	assert.ErrorAs(t, err, &notExist)

	_, err = ReadSheet(bytes.NewReader([]byte("not a workbook")), "", true, "id")
	assert.Error(t, err)
}

func TestReadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.xlsx")
	require.NoError(t, os.WriteFile(path, workbook(t), 0o600))

	rows, err := ReadRows(context.Background(), fs.File(path), "Sheet1", "id")
	require.NoError(t, err)
	assert.Equal(t, "Harry", rows[1]["First Name"])
}
