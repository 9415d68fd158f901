package supply

import (
	"context"
	"sort"

	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/logging"
	"github.com/droxline/stockmap/pkg/mapping"
	"github.com/droxline/stockmap/pkg/stock"
	"github.com/droxline/stockmap/pkg/tabular"
)

// Ingest reads one or more raw supplier files with the entity's mapping
// and reduces them to a Dataset.
//
// Single-file suppliers keep their records in file order. Multi-file
// suppliers (one file per warehouse) are read independently with the
// same mapping, concatenated, then group-summed by product id: a
// product's stock is the sum across warehouses, never the last file's
// value. One failed file among many is skipped with a warning; the
// ingest fails only when every file does.
func Ingest(ctx context.Context, entity string, m mapping.Mapping, paths ...string) (*Dataset, error) {
	if len(paths) == 0 {
		return nil, errors.NewEntityError("supplier", entity, errors.ErrNotFound)
	}

	log := logging.Ctx(ctx)
	ds := &Dataset{Entity: entity}
	var lastErr error

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, errors.ErrCanceled
		}

		fctx := logging.WithFile(ctx, path)
		records, result, err := ingestFile(path, entity, m)
		if err != nil {
			lastErr = err
			logging.Ctx(fctx).Warn().
				Str("supplier", entity).
				Err(err).
				Msg("skipping unreadable supplier file")
			continue
		}

		ds.Records = append(ds.Records, records...)
		ds.Files = append(ds.Files, path)
		if ds.Encoding == "" {
			ds.Encoding = result.Encoding
			ds.Delimiter = result.Delimiter
		}
	}

	if len(ds.Files) == 0 {
		return nil, errors.WrapEntity("supplier", entity, lastErr)
	}
	// Keyed on the mapping, not the file count: a multi-file supplier that
	// delivered a single warehouse this run still comes back group-summed.
	if m.MultiFile {
		ds.Records = groupSum(ds.Records)
	}

	log.Info().
		Str("supplier", entity).
		Int("files", len(ds.Files)).
		Int("products", len(ds.Records)).
		Msg("supplier ingested")
	return ds, nil
}

// ingestFile reads one file and reduces it to records.
func ingestFile(path, entity string, m mapping.Mapping) ([]Record, *tabular.Result, error) {
	result, err := tabular.Read(path)
	if err != nil {
		return nil, nil, err
	}

	cols, err := mapping.ResolveColumns(result.Table, m, entity)
	if err != nil {
		return nil, nil, err
	}
	refIdx := result.Table.ColumnIndex(cols.Reference)
	qtyIdx := result.Table.ColumnIndex(cols.Quantity)

	records := make([]Record, 0, result.Table.NumRows())
	for i := 0; i < result.Table.NumRows(); i++ {
		id := NormalizeProductID(result.Table.Cell(i, refIdx))
		if id == "" {
			// A blank reference can never join anything.
			continue
		}
		records = append(records, Record{
			ProductID: id,
			Quantity:  stock.Normalize(result.Table.Cell(i, qtyIdx)),
		})
	}
	return records, result, nil
}

// groupSum merges duplicate product ids by summing, emitting ids in
// ascending order for reproducible output.
func groupSum(records []Record) []Record {
	totals := make(map[string]int, len(records))
	for _, r := range records {
		totals[r.ProductID] += r.Quantity
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, Record{ProductID: id, Quantity: totals[id]})
	}
	return out
}
