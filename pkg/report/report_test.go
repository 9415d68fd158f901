package report_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/report"
)

func TestReportSummary(t *testing.T) {
	r := report.New()
	r.AddSupplier("FOURNISSEUR_H")
	r.AddSupplier("FOURNISSEUR_D")
	r.AddSupplier("FOURNISSEUR_H") // duplicate, counted once
	r.AddPlatform("SHOP")
	r.AddFileResult("/out/SHOP-latest.csv", nil)
	r.AddFileResult("/in/broken.csv", errors.New("unreadable"))
	r.AddProducts(12)
	r.AddWarning("skipped one file")
	r.End()

	s := r.Summary()
	assert.Equal(t, []string{"FOURNISSEUR_D", "FOURNISSEUR_H"}, s.Suppliers)
	assert.Equal(t, []string{"SHOP"}, s.Platforms)
	assert.Equal(t, []string{"/out/SHOP-latest.csv"}, s.FilesSuccessful)
	require.Len(t, s.FilesFailed, 1)
	assert.Equal(t, "unreadable", s.FilesFailed[0].Error)
	assert.Equal(t, 12, s.ProductsUpdated)
	assert.False(t, s.Success)
	assert.GreaterOrEqual(t, s.Duration.Nanoseconds(), int64(0))
}

func TestReportSuccessWhenClean(t *testing.T) {
	r := report.New()
	r.AddPlatform("SHOP")
	r.AddFileResult("/out/SHOP-latest.csv", nil)
	r.End()

	assert.True(t, r.Summary().Success)
}

func TestSummaryMarkdown(t *testing.T) {
	r := report.New()
	r.AddSupplier("FOURNISSEUR_H")
	r.AddPlatform("SHOP")
	r.AddProducts(3)
	r.AddFileResult("/in/broken.csv", errors.New("unreadable"))
	r.End()

	body, err := r.Summary().Markdown()
	require.NoError(t, err)
	assert.Contains(t, body, "# Stock Update Report")
	assert.Contains(t, body, "Status: failure")
	assert.Contains(t, body, "Products updated")
	assert.Contains(t, body, "## Failed Files")
	assert.Contains(t, body, "/in/broken.csv: unreadable")
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	r := report.New()
	r.AddPlatform("SHOP")
	r.End()

	require.NoError(t, report.FileSink{Dir: dir}.Publish(context.Background(), r.Summary()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "report-")

	body, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Status: success")
}

func TestMultiSink(t *testing.T) {
	dir := t.TempDir()
	sinks := report.MultiSink{report.LogSink{}, report.FileSink{Dir: dir}}

	r := report.New()
	r.End()
	require.NoError(t, sinks.Publish(context.Background(), r.Summary()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
