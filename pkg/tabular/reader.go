package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/droxline/stockmap/pkg/constants"
	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/logging"
)

// Result is a decoded table plus the source metadata needed to write a
// table back out in the same convention.
type Result struct {
	Table      *Table
	Encoding   string // "" for binary spreadsheet formats
	Delimiter  string // "" for binary spreadsheet formats
	Headerless bool
	Path       string
}

// candidateDelimiters is the ordered delimiter list for delimited files.
var candidateDelimiters = []string{";", ",", "|", "\t", " "}

// problematicNamePatterns marks filenames whose delimiter is reliably a
// semicolon regardless of content: German supplier article exports that
// embed commas as decimal separators in almost every numeric cell.
var problematicNamePatterns = []string{"artikelstamm", "sbshop", "export"}

// Read decodes the file at path into a table. Delimited text formats go
// through the encoding/delimiter candidate search; binary spreadsheet
// formats use a fixed reader. Unsupported extensions fail immediately.
func Read(path string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return readDelimited(path)
	case ".xls", ".xlsx":
		return readSpreadsheet(path)
	default:
		return nil, errors.NewValidationError("path", path, "unsupported file extension")
	}
}

// readDelimited tries every (encoding, delimiter) candidate pair in order
// and accepts the first combination that parses into a plausible table.
// When none does, the returned UnreadableFileError enumerates every
// attempt with its rejection reason.
func readDelimited(path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	delimiters := delimitersFor(path)
	var attempts []errors.ReadAttempt

	for _, encName := range candidateEncodings(raw) {
		text, decErr := decode(raw, encName)
		if decErr != nil {
			for _, delim := range delimiters {
				attempts = append(attempts, errors.ReadAttempt{
					Encoding:  encName,
					Delimiter: delim,
					Reason:    "decode failed: " + decErr.Error(),
				})
			}
			continue
		}

		for _, delim := range delimiters {
			candidate, reason := parseCandidate(text, delim)
			if reason != "" {
				attempts = append(attempts, errors.ReadAttempt{
					Encoding:  encName,
					Delimiter: delim,
					Reason:    reason,
				})
				continue
			}

			if candidate.skipped > 0 {
				logging.Warn().
					Str("file", path).
					Int("rows", candidate.skipped).
					Msg("Skipped malformed rows with unexpected field count")
			}
			return &Result{
				Table:      candidate.table,
				Encoding:   encName,
				Delimiter:  delim,
				Headerless: candidate.headerless,
				Path:       path,
			}, nil
		}
	}

	return nil, errors.NewUnreadableFileError(path, attempts)
}

// delimitersFor returns the delimiter candidates for a file, promoting
// semicolon to the first position for known problematic filenames.
func delimitersFor(path string) []string {
	name := strings.ToLower(filepath.Base(path))
	for _, pattern := range problematicNamePatterns {
		if strings.Contains(name, pattern) {
			return promoteDelimiter(candidateDelimiters, ";")
		}
	}
	return candidateDelimiters
}

// promoteDelimiter moves delim to the front of the candidate list.
func promoteDelimiter(delims []string, delim string) []string {
	promoted := make([]string, 0, len(delims))
	promoted = append(promoted, delim)
	for _, d := range delims {
		if d != delim {
			promoted = append(promoted, d)
		}
	}
	return promoted
}

// parsedCandidate is the outcome of one successful candidate parse.
type parsedCandidate struct {
	table      *Table
	headerless bool
	skipped    int
}

// parseCandidate parses text with one delimiter and validates the result.
// A non-empty reason means the combination is rejected.
func parseCandidate(text, delim string) (parsedCandidate, string) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = []rune(delim)[0]
	reader.FieldsPerRecord = -1 // arity checked leniently below
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return parsedCandidate{}, "parse failed: " + err.Error()
	}
	if len(records) == 0 {
		return parsedCandidate{}, "empty file"
	}

	width := len(records[0])
	if width < constants.MinColumns {
		return parsedCandidate{}, "only 1 column"
	}

	if other := mismatchedDelimiter(records, delim); other != "" {
		return parsedCandidate{}, "cells still contain delimiter " + strconvDelim(other)
	}

	headerless := !HasHeader(records[0])

	var columns []string
	data := records
	if headerless {
		columns = SyntheticColumns(width)
	} else {
		columns = make([]string, width)
		for i, label := range records[0] {
			columns[i] = strings.TrimSpace(label)
		}
		data = records[1:]
	}

	rows := make([][]string, 0, len(data))
	skipped := 0
	for _, row := range data {
		if len(row) != width {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) < constants.MinDataRows {
		return parsedCandidate{}, "not enough data rows"
	}

	return parsedCandidate{
		table:      &Table{Columns: columns, Rows: rows},
		headerless: headerless,
		skipped:    skipped,
	}, ""
}

// mismatchedDelimiter checks a sample of parsed cells for an obvious
// delimiter mismatch: a supposedly split cell that still contains two or
// more occurrences of a different non-space delimiter. Returns the
// offending delimiter, or "".
func mismatchedDelimiter(records [][]string, delim string) string {
	sample := records
	if len(sample) > constants.SampleRows {
		sample = sample[:constants.SampleRows]
	}

	for _, other := range candidateDelimiters {
		if other == delim || other == " " {
			continue
		}
		for _, row := range sample {
			for _, cell := range row {
				if strings.Count(cell, other) >= 2 {
					return other
				}
			}
		}
	}
	return ""
}

// strconvDelim renders a delimiter readably for rejection reasons.
func strconvDelim(delim string) string {
	switch delim {
	case "\t":
		return "\\t"
	case " ":
		return "space"
	default:
		return delim
	}
}
