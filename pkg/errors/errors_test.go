package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/droxline/stockmap/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestUnreadableFileError(t *testing.T) {
	t.Run("no attempts", func(t *testing.T) {
		err := pkgerrors.NewUnreadableFileError("stock.csv", nil)
		assert.Equal(t, "unreadable file stock.csv", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrUnreadableFile))
	})

	t.Run("attempt list in message", func(t *testing.T) {
		attempts := []pkgerrors.ReadAttempt{
			{Encoding: "utf-8", Delimiter: ";", Reason: "only 1 column"},
			{Encoding: "windows-1252", Delimiter: "\t", Reason: "decode failed"},
		}
		err := pkgerrors.NewUnreadableFileError("stock.csv", attempts)
		assert.Contains(t, err.Error(), "tried 2 combinations")
		assert.Contains(t, err.Error(), "utf-8/;: only 1 column")
		assert.Contains(t, err.Error(), "windows-1252/\\t: decode failed")
		assert.True(t, pkgerrors.IsUnreadableFile(err))
	})

	t.Run("space delimiter rendered readably", func(t *testing.T) {
		a := pkgerrors.ReadAttempt{Encoding: "latin-1", Delimiter: " ", Reason: "mismatch"}
		assert.Equal(t, "latin-1/space: mismatch", a.String())
	})
}

func TestColumnNotFoundError(t *testing.T) {
	t.Run("carries indexed labels", func(t *testing.T) {
		err := pkgerrors.NewColumnNotFoundError("Qty", []string{"Ref", "Stock", "Price"})
		assert.Equal(t, `column "Qty" not found; available columns: [0:Ref, 1:Stock, 2:Price]`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrColumnNotFound))
		assert.True(t, pkgerrors.IsColumnNotFound(err))
	})
}

func TestMappingError(t *testing.T) {
	err := pkgerrors.NewMappingError("FOURNISSEUR_A", "quantity")
	assert.Equal(t, "mapping for FOURNISSEUR_A incomplete: no quantity target", err.Error())
	assert.True(t, pkgerrors.IsMappingIncomplete(err))
}

func TestEntityError(t *testing.T) {
	base := pkgerrors.NewMappingError("AMAZON_DE", "reference")
	err := pkgerrors.WrapEntity("platform", "AMAZON_DE", base)
	assert.Equal(t, "platform AMAZON_DE: mapping for AMAZON_DE incomplete: no reference target", err.Error())
	assert.True(t, pkgerrors.IsMappingIncomplete(err))
	assert.Nil(t, pkgerrors.WrapEntity("platform", "AMAZON_DE", nil))
}

func TestAggregationError(t *testing.T) {
	err := &pkgerrors.AggregationError{ProductID: "A1", Value: "abc"}
	assert.True(t, errors.Is(err, pkgerrors.ErrAggregationInconsistency))
	assert.Contains(t, err.Error(), "A1")
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "/tmp/out.csv", base)
	assert.Equal(t, "IO error during write of /tmp/out.csv: permission denied", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))
	assert.Nil(t, pkgerrors.WrapIO("write", "/tmp/out.csv", nil))
}

func TestParseError(t *testing.T) {
	base := errors.New("bad indent")
	err := pkgerrors.WrapParse("yaml", "header_mappings.yaml", base)
	assert.Equal(t, "parse error in yaml file header_mappings.yaml: bad indent", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("workers", 99, "exceeds maximum")
	assert.Equal(t, "validation failed for field workers: exceeds maximum", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))
}
