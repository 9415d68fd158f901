package mapping_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/mapping"
)

const storeYAML = `FOURNISSEUR_H:
  mappings:
    - source: Article number
      target: reference
    - source: Supplier stock
      target: quantity
RAD:
  no_header: true
  multi_file: true
  mappings:
    - source: 0
      target: reference
    - source: 1
      target: quantity
INCOMPLETE:
  mappings:
    - source: ref
      target: reference
`

func loadStore(t *testing.T) *mapping.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "header_mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(storeYAML), 0o644))

	store, err := mapping.Load(path)
	require.NoError(t, err)
	return store
}

func TestStoreLoad(t *testing.T) {
	store := loadStore(t)

	assert.Equal(t, []string{"FOURNISSEUR_H", "INCOMPLETE", "RAD"}, store.Entities())

	m, ok := store.Lookup("FOURNISSEUR_H")
	require.True(t, ok)
	assert.False(t, m.Headerless)
	assert.False(t, m.MultiFile)

	source, ok := m.SourceFor(mapping.TargetQuantity)
	require.True(t, ok)
	assert.Equal(t, mapping.Source("Supplier stock"), source)
}

func TestStoreIntegerSourcesDecodeAsStrings(t *testing.T) {
	store := loadStore(t)

	m, ok := store.Lookup("RAD")
	require.True(t, ok)
	assert.True(t, m.Headerless)
	assert.True(t, m.MultiFile)

	ref, ok := m.SourceFor(mapping.TargetReference)
	require.True(t, ok)
	assert.Equal(t, mapping.Source("0"), ref)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store, err := mapping.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, store.Entities())
}

func TestStoreRequire(t *testing.T) {
	store := loadStore(t)

	_, err := store.Require("FOURNISSEUR_H")
	require.NoError(t, err)

	_, err = store.Require("NOBODY")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = store.Require("INCOMPLETE")
	require.Error(t, err)
	assert.True(t, errors.IsMappingIncomplete(err))
	assert.Contains(t, err.Error(), "quantity")
}

func TestStoreSaveRoundtrip(t *testing.T) {
	store := loadStore(t)

	store.Set("NEW_PLATFORM", mapping.Mapping{
		Entries: []mapping.Entry{
			{Source: "SKU", Target: mapping.TargetReference},
			{Source: "Stock", Target: mapping.TargetQuantity},
		},
	})
	store.Delete("INCOMPLETE")
	require.NoError(t, store.Save())

	reloaded, err := mapping.Load(store.Path())
	require.NoError(t, err)
	assert.Equal(t, []string{"FOURNISSEUR_H", "NEW_PLATFORM", "RAD"}, reloaded.Entities())

	m, ok := reloaded.Lookup("NEW_PLATFORM")
	require.True(t, ok)
	assert.NoError(t, m.Validate("NEW_PLATFORM"))
}

func TestStoreCleanupRemovesOrphans(t *testing.T) {
	store := loadStore(t)

	removed := store.Cleanup([]string{"FOURNISSEUR_H"})
	assert.Equal(t, []string{"INCOMPLETE", "RAD"}, removed)
	assert.Equal(t, []string{"FOURNISSEUR_H"}, store.Entities())
}
