package tabular_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/tabular"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadSemicolonCSV(t *testing.T) {
	path := writeTemp(t, "stock.csv", []byte("Reference;Stock\nA1;3\nA2;5\n"))

	result, err := tabular.Read(path)
	require.NoError(t, err)
	assert.Equal(t, ";", result.Delimiter)
	assert.False(t, result.Headerless)
	assert.Equal(t, []string{"Reference", "Stock"}, result.Table.Columns)
	require.Equal(t, 2, result.Table.NumRows())
	assert.Equal(t, "A1", result.Table.Cell(0, 0))
	assert.Equal(t, "5", result.Table.Cell(1, 1))
}

func TestReadTabDelimitedTxt(t *testing.T) {
	path := writeTemp(t, "feed.txt", []byte("Referenz\tBestand\nB1\t7\nB2\t9\n"))

	result, err := tabular.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "\t", result.Delimiter)
	assert.Equal(t, []string{"Referenz", "Bestand"}, result.Table.Columns)
	assert.Equal(t, 2, result.Table.NumRows())
}

func TestReadWindows1252(t *testing.T) {
	// "Référence;Qté" with é encoded as 0xE9: invalid UTF-8, valid cp1252.
	data := []byte("R\xe9f\xe9rence;Qt\xe9\nC1;2\nC2;4\n")
	path := writeTemp(t, "legacy.csv", data)

	result, err := tabular.Read(path)
	require.NoError(t, err)
	assert.Equal(t, ";", result.Delimiter)
	assert.NotEmpty(t, result.Encoding)
	assert.NotEqual(t, "utf-8", result.Encoding)
	assert.Equal(t, "Référence", result.Table.Columns[0])
	assert.Equal(t, "Qté", result.Table.Columns[1])
}

func TestReadHeaderlessNumericFirstRow(t *testing.T) {
	// Every first-row cell is a bare numeric string, so the row is data.
	path := writeTemp(t, "rad_01.csv", []byte("01;000057\n02;000031\n03;000012\n"))

	result, err := tabular.Read(path)
	require.NoError(t, err)
	assert.True(t, result.Headerless)
	assert.Equal(t, []string{"col_0", "col_1"}, result.Table.Columns)
	require.Equal(t, 3, result.Table.NumRows())
	assert.Equal(t, "01", result.Table.Cell(0, 0))
	assert.Equal(t, "000057", result.Table.Cell(0, 1))
}

func TestReadSkipsMalformedRows(t *testing.T) {
	path := writeTemp(t, "ragged.csv", []byte("Ref;Qty\nA1;1\nBROKENROW\nA2;2\n"))

	result, err := tabular.Read(path)
	require.NoError(t, err)
	require.Equal(t, 2, result.Table.NumRows())
	assert.Equal(t, "A1", result.Table.Cell(0, 0))
	assert.Equal(t, "A2", result.Table.Cell(1, 0))
}

func TestReadUnreadableFileCarriesAttempts(t *testing.T) {
	// One column under every delimiter: nothing can be accepted.
	path := writeTemp(t, "broken.csv", []byte("justonecolumn\nvalue\nvalue\n"))

	_, err := tabular.Read(path)
	require.Error(t, err)
	assert.True(t, errors.IsUnreadableFile(err))

	var unreadable *errors.UnreadableFileError
	require.ErrorAs(t, err, &unreadable)
	assert.NotEmpty(t, unreadable.Attempts)
	assert.Contains(t, err.Error(), "only 1 column")
}

func TestReadRejectsUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "stock.pdf", []byte("%PDF"))

	_, err := tabular.Read(path)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestReadIdempotent(t *testing.T) {
	path := writeTemp(t, "stable.csv", []byte("Ref;Qty\nA1;1\nA2;2\n"))

	first, err := tabular.Read(path)
	require.NoError(t, err)
	second, err := tabular.Read(path)
	require.NoError(t, err)

	assert.Equal(t, first.Encoding, second.Encoding)
	assert.Equal(t, first.Delimiter, second.Delimiter)
	assert.Equal(t, first.Table, second.Table)
}

func TestTableHelpers(t *testing.T) {
	table := &tabular.Table{
		Columns: []string{"Ref", "Qty"},
		Rows:    [][]string{{"A1", "3"}, {"A2", "5"}},
	}

	assert.Equal(t, 1, table.ColumnIndex("Qty"))
	assert.Equal(t, -1, table.ColumnIndex("Missing"))

	qty, ok := table.Column("Qty")
	require.True(t, ok)
	assert.Equal(t, []string{"3", "5"}, qty)

	_, ok = table.Column("Missing")
	assert.False(t, ok)

	clone := table.Clone()
	clone.Rows[0][1] = "999"
	assert.Equal(t, "3", table.Cell(0, 1))
}
