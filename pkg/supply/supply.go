// Package supply turns raw supplier files into reduced per-product
// quantity datasets and aggregates them into the cumulative supply that
// drives platform merges.
package supply

import "strings"

// Record is one reduced (product id, quantity) pair.
type Record struct {
	ProductID string
	Quantity  int
}

// Dataset is the reduced view of one supplier for one run. Encoding and
// Delimiter describe the first file read, kept for validation snapshots.
type Dataset struct {
	Entity    string
	Records   []Record
	Files     []string
	Encoding  string
	Delimiter string
}

// Total sums the dataset's quantities.
func (d *Dataset) Total() int {
	total := 0
	for _, r := range d.Records {
		total += r.Quantity
	}
	return total
}

// NormalizeProductID canonicalizes a product identifier cell. Product
// ids always compare as strings so "0012" keeps its leading zeros, but
// spreadsheet cells frequently arrive float-formatted ("0012.0"); the
// zero fraction is dropped without touching the string form of the
// integer part.
func NormalizeProductID(raw string) string {
	id := strings.TrimSpace(raw)
	if dot := strings.IndexByte(id, '.'); dot > 0 {
		intPart, frac := id[:dot], id[dot+1:]
		if isDigits(intPart) && isZeros(frac) {
			return intPart
		}
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isZeros(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return true
}
