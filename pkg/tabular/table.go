// Package tabular decodes tabular files of unknown encoding, delimiter and
// header convention into an in-memory table, and writes tables back out in
// their original format. It is the ingestion boundary of the stockmap
// engine: everything downstream works on a Table and never touches files.
package tabular

import (
	"fmt"
)

// Table is a two-dimensional ordered grid of cells with an ordered sequence
// of column labels. Labels are synthetic ("col_0", "col_1", ...) when the
// source file had no header row. A Table is immutable by convention once
// returned from Read; downstream stages copy before mutating.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the column with the given label,
// or -1 when no such column exists.
func (t *Table) ColumnIndex(label string) int {
	for i, c := range t.Columns {
		if c == label {
			return i
		}
	}
	return -1
}

// Column returns all cells of the named column in row order.
// The second return value is false when the column does not exist.
func (t *Table) Column(label string) ([]string, bool) {
	idx := t.ColumnIndex(label)
	if idx < 0 {
		return nil, false
	}
	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = cellAt(row, idx)
	}
	return cells, true
}

// Cell returns the cell at (row, col), or "" when the row is ragged and
// has no cell at that column.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return cellAt(t.Rows[row], col)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}
	return &Table{Columns: columns, Rows: rows}
}

// cellAt reads a cell from a possibly ragged row.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// SyntheticColumns builds positional labels for a headerless table.
func SyntheticColumns(n int) []string {
	columns := make([]string, n)
	for i := range columns {
		columns[i] = fmt.Sprintf("col_%d", i)
	}
	return columns
}
