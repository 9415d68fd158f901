package tabular

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/droxline/stockmap/pkg/constants"
	"github.com/droxline/stockmap/pkg/errors"
)

// WriteOptions carries the source metadata a table is written back with,
// so an updated platform file keeps the exact convention of its input.
type WriteOptions struct {
	Encoding   string // "" means UTF-8
	Delimiter  string // "" means comma
	Headerless bool   // suppress the label row for headerless sources
}

// Write serializes a table to path. Delimited text formats reuse the
// original encoding and delimiter; spreadsheet formats go through the
// fixed writer. The directory must already exist.
func Write(path string, t *Table, opts WriteOptions) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return writeDelimited(path, t, opts)
	case ".xls", ".xlsx":
		return writeSpreadsheet(path, t, opts.Headerless)
	default:
		return errors.NewValidationError("path", path, "unsupported file extension")
	}
}

// writeDelimited writes a delimited text file in the given encoding.
func writeDelimited(path string, t *Table, opts WriteOptions) error {
	delim := opts.Delimiter
	if delim == "" {
		delim = ","
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = []rune(delim)[0]

	if !opts.Headerless {
		if err := w.Write(t.Columns); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}

	encoded, err := encode(buf.String(), opts.Encoding)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, encoded, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
