package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/droxline/stockmap/pkg/logging"
)

func TestWithLoggerAndFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)

	ctx := logging.WithLogger(context.Background(), &logger)
	got := logging.FromContext(ctx)
	assert.Equal(t, &logger, got)
}

func TestFromContextDefaults(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)
	ctx := logging.WithLogger(context.Background(), &logger)

	ctx = logging.WithRunID(ctx, "run-42")
	assert.Equal(t, "run-42", logging.RunID(ctx))

	logging.Ctx(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"run_id":"run-42"`)
}

func TestWithSupplierField(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)
	ctx := logging.WithLogger(context.Background(), &logger)

	ctx = logging.WithSupplier(ctx, "FOURNISSEUR_H")
	logging.Ctx(ctx).Info().Msg("ingesting")
	assert.Contains(t, buf.String(), `"supplier":"FOURNISSEUR_H"`)
}

func TestWithPlatformAndFileFields(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)
	ctx := logging.WithLogger(context.Background(), &logger)

	ctx = logging.WithPlatform(ctx, "AMAZON_DE")
	ctx = logging.WithFile(ctx, "feed.csv")
	logging.Ctx(ctx).Info().Msg("merging")

	out := buf.String()
	assert.Contains(t, out, `"platform":"AMAZON_DE"`)
	assert.Contains(t, out, `"file":"feed.csv"`)
}
