package merge_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/mapping"
	"github.com/droxline/stockmap/pkg/merge"
	"github.com/droxline/stockmap/pkg/supply"
	"github.com/droxline/stockmap/pkg/tabular"
)

var platformMapping = mapping.Mapping{
	Entries: []mapping.Entry{
		{Source: "SKU", Target: mapping.TargetReference},
		{Source: "Stock", Target: mapping.TargetQuantity},
	},
}

func writePlatform(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "platform.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func cumulativeOf(records ...supply.Record) *supply.Cumulative {
	return supply.Aggregate([]*supply.Dataset{
		{Entity: "FOURNISSEUR_H", Records: records},
	})
}

func TestMergeCombineFirst(t *testing.T) {
	path := writePlatform(t, "SKU;Name;Stock\nA1;Widget;5\nA2;Gadget;2\nA3;Sprocket;9\n")
	c := cumulativeOf(
		supply.Record{ProductID: "A1", Quantity: 6},
		supply.Record{ProductID: "A2", Quantity: 2},
	)

	result, err := merge.Merge(context.Background(), "SHOP", platformMapping, path, c)
	require.NoError(t, err)

	// A1 moved 5->6, A2 matched but kept its value, A3 had no supplier.
	assert.Equal(t, 2, result.Matched)
	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, "SHOP", change.Platform)
	assert.Equal(t, "A1", change.ProductID)
	assert.Equal(t, 5, change.OldQuantity)
	assert.Equal(t, 6, change.NewQuantity)
	assert.Equal(t, map[string]int{"FOURNISSEUR_H": 6}, change.Suppliers)

	assert.Equal(t, "6", result.Table.Cell(0, 2))
	assert.Equal(t, "2", result.Table.Cell(1, 2))
	assert.Equal(t, "9", result.Table.Cell(2, 2))
}

func TestMergeKeepsEveryRowAndColumn(t *testing.T) {
	path := writePlatform(t, "SKU;Name;Stock\nA1;Widget;5\nZZ;Orphan;7\n")
	c := cumulativeOf(supply.Record{ProductID: "A1", Quantity: 1})

	result, err := merge.Merge(context.Background(), "SHOP", platformMapping, path, c)
	require.NoError(t, err)

	require.Equal(t, 2, result.Table.NumRows())
	assert.Equal(t, "Widget", result.Table.Cell(0, 1))
	assert.Equal(t, "Orphan", result.Table.Cell(1, 1))
	assert.Equal(t, "7", result.Table.Cell(1, 2))
}

func TestMergeNormalizesLegacyQuantities(t *testing.T) {
	// A platform's own values can be textual; unmatched rows still get
	// normalized on write-back without producing a change record.
	path := writePlatform(t, "SKU;Name;Stock\nA9;Legacy;available\nB1;Other;2\n")
	c := cumulativeOf()

	result, err := merge.Merge(context.Background(), "SHOP", platformMapping, path, c)
	require.NoError(t, err)

	assert.Equal(t, "3", result.Table.Cell(0, 2))
	assert.Equal(t, "2", result.Table.Cell(1, 2))
	assert.Empty(t, result.Changes)
}

func TestMergeUpdatesDuplicateRowsIndependently(t *testing.T) {
	path := writePlatform(t, "SKU;Name;Stock\nA1;Widget;5\nA1;Widget bis;1\n")
	c := cumulativeOf(supply.Record{ProductID: "A1", Quantity: 4})

	result, err := merge.Merge(context.Background(), "SHOP", platformMapping, path, c)
	require.NoError(t, err)

	assert.Equal(t, "4", result.Table.Cell(0, 2))
	assert.Equal(t, "4", result.Table.Cell(1, 2))
	// Both rows moved, so both produce a change.
	require.Len(t, result.Changes, 2)
	assert.Equal(t, 5, result.Changes[0].OldQuantity)
	assert.Equal(t, 1, result.Changes[1].OldQuantity)
}

func TestMergeFloatFormattedReferences(t *testing.T) {
	path := writePlatform(t, "SKU;Name;Stock\n0012.0;Widget;1\nA2;Other;4\n")
	c := cumulativeOf(supply.Record{ProductID: "0012", Quantity: 8})

	result, err := merge.Merge(context.Background(), "SHOP", platformMapping, path, c)
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "0012", result.Changes[0].ProductID)
	assert.Equal(t, "8", result.Table.Cell(0, 2))
}

func TestMergeUnresolvableColumn(t *testing.T) {
	path := writePlatform(t, "Other;Columns\nx;y\nz;w\n")
	c := cumulativeOf()

	badMapping := mapping.Mapping{
		Entries: []mapping.Entry{
			{Source: "warehouse_ref", Target: mapping.TargetReference},
			{Source: "warehouse_qty", Target: mapping.TargetQuantity},
		},
	}

	_, err := merge.Merge(context.Background(), "SHOP", badMapping, path, c)
	require.Error(t, err)
	assert.True(t, errors.IsColumnNotFound(err))
	assert.Contains(t, err.Error(), "SHOP")
}

func TestMergeWriteOptionsPreserveConvention(t *testing.T) {
	path := writePlatform(t, "SKU;Name;Stock\nA1;Widget;5\nA2;Gadget;2\n")
	c := cumulativeOf(supply.Record{ProductID: "A1", Quantity: 6})

	result, err := merge.Merge(context.Background(), "SHOP", platformMapping, path, c)
	require.NoError(t, err)

	opts := result.WriteOptions()
	assert.Equal(t, ";", opts.Delimiter)
	assert.False(t, opts.Headerless)

	out := filepath.Join(t.TempDir(), "updated.csv")
	require.NoError(t, tabular.Write(out, result.Table, opts))

	reread, err := tabular.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "6", reread.Table.Cell(0, 2))
}

func TestMergeCanceled(t *testing.T) {
	path := writePlatform(t, "SKU;Name;Stock\nA1;Widget;5\nA2;Gadget;2\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := merge.Merge(ctx, "SHOP", platformMapping, path, cumulativeOf())
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
}
