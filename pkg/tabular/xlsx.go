package tabular

import (
	"github.com/xuri/excelize/v2"

	"github.com/droxline/stockmap/pkg/errors"
)

// readSpreadsheet reads a binary spreadsheet with a fixed reader. Only
// the first sheet is consulted: supplier and platform feeds are
// single-sheet exports. Header presence uses the same heuristic as
// delimited files.
func readSpreadsheet(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	if len(rows) == 0 {
		return nil, errors.NewUnreadableFileError(path, []errors.ReadAttempt{
			{Encoding: "binary", Delimiter: "-", Reason: "empty sheet " + sheet},
		})
	}

	width := len(rows[0])
	headerless := !HasHeader(rows[0])

	var columns []string
	data := rows
	if headerless {
		columns = SyntheticColumns(width)
	} else {
		columns = rows[0]
		data = rows[1:]
	}

	// Spreadsheet rows come back ragged when trailing cells are empty;
	// pad to header width instead of skipping.
	padded := make([][]string, 0, len(data))
	for _, row := range data {
		if len(row) < width {
			full := make([]string, width)
			copy(full, row)
			row = full
		}
		padded = append(padded, row[:width])
	}

	return &Result{
		Table:      &Table{Columns: columns, Rows: padded},
		Headerless: headerless,
		Path:       path,
	}, nil
}

// writeSpreadsheet writes a table as an xlsx workbook.
func writeSpreadsheet(path string, t *Table, headerless bool) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	rowIdx := 1
	if !headerless {
		if err := setStringRow(f, sheet, rowIdx, t.Columns); err != nil {
			return errors.WrapIO("write", path, err)
		}
		rowIdx++
	}
	for _, row := range t.Rows {
		if err := setStringRow(f, sheet, rowIdx, row); err != nil {
			return errors.WrapIO("write", path, err)
		}
		rowIdx++
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// setStringRow writes one row of string cells starting at column A.
func setStringRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(sheet, cell, &values)
}
