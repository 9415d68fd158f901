// Package merge applies the cumulative supply to a platform's own file.
// The platform table is the frame: every row survives the merge, only
// the quantity column is rewritten, and a change record is emitted for
// each row whose quantity actually moved.
package merge

import (
	"context"
	"strconv"

	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/logging"
	"github.com/droxline/stockmap/pkg/mapping"
	"github.com/droxline/stockmap/pkg/stock"
	"github.com/droxline/stockmap/pkg/supply"
	"github.com/droxline/stockmap/pkg/tabular"
)

// Change records one platform row whose quantity moved during a merge.
// Suppliers carries the per-supplier contribution for the product, nil
// when the new value came from the platform's own normalization.
type Change struct {
	Platform    string
	ProductID   string
	OldQuantity int
	NewQuantity int
	Suppliers   map[string]int
}

// Result is the outcome of merging one platform file.
type Result struct {
	Entity     string
	Table      *tabular.Table
	Changes    []Change
	Encoding   string
	Delimiter  string
	Headerless bool
	Path       string
	Matched    int
}

// WriteOptions returns the options that preserve the source file's
// convention on write-back.
func (r *Result) WriteOptions() tabular.WriteOptions {
	return tabular.WriteOptions{
		Encoding:   r.Encoding,
		Delimiter:  r.Delimiter,
		Headerless: r.Headerless,
	}
}

// Merge reads a platform file, resolves its reference and quantity
// columns, and combine-firsts the cumulative supply into the quantity
// column: rows whose product id has cumulative supply take the
// cumulative total, rows without keep their own quantity, run through
// the same normalizer as supplier cells because platform legacy values
// are just as messy. Duplicate product ids on the platform side are not
// deduplicated; every row is updated independently. No row is ever
// dropped and no other column is touched.
func Merge(ctx context.Context, entity string, m mapping.Mapping, path string, c *supply.Cumulative) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}

	read, err := tabular.Read(path)
	if err != nil {
		return nil, errors.WrapEntity("platform", entity, err)
	}
	cols, err := mapping.ResolveColumns(read.Table, m, entity)
	if err != nil {
		return nil, err
	}
	refIdx := read.Table.ColumnIndex(cols.Reference)
	qtyIdx := read.Table.ColumnIndex(cols.Quantity)

	result := &Result{
		Entity:     entity,
		Table:      read.Table.Clone(),
		Encoding:   read.Encoding,
		Delimiter:  read.Delimiter,
		Headerless: read.Headerless,
		Path:       path,
	}

	for i, row := range result.Table.Rows {
		if qtyIdx >= len(row) {
			continue
		}
		id := supply.NormalizeProductID(result.Table.Cell(i, refIdx))
		if id == "" {
			// No reference to join on: leave the cell as read.
			continue
		}

		old := stock.Normalize(row[qtyIdx])
		next := old
		var suppliers map[string]int
		if total, ok := c.Total(id); ok {
			next = total
			suppliers = c.Contributions(id)
			result.Matched++
		}

		row[qtyIdx] = strconv.Itoa(next)
		if next != old {
			result.Changes = append(result.Changes, Change{
				Platform:    entity,
				ProductID:   id,
				OldQuantity: old,
				NewQuantity: next,
				Suppliers:   suppliers,
			})
		}
	}

	logging.Ctx(ctx).Info().
		Str("platform", entity).
		Str("file", path).
		Int("rows", result.Table.NumRows()).
		Int("matched", result.Matched).
		Int("changes", len(result.Changes)).
		Msg("platform merged")
	return result, nil
}
