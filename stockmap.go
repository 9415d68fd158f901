// Package stockmap reconciles inventory quantities across supplier
// feeds and republishes the consolidated quantity onto marketplace
// platform files.
//
// A run is a single-pass batch pipeline: acquire raw files, ingest each
// supplier into a reduced (product, quantity) dataset, aggregate the
// datasets into one cumulative supply, then merge that supply into every
// platform's own file without touching anything the reconciliation does
// not own. One supplier or platform failing never aborts the others; the
// run fails only when a whole side produces nothing.
//
// Example usage:
//
//	store, err := mapping.Load("header_mappings.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sm, err := stockmap.New(
//	    stockmap.WithMappings(store),
//	    stockmap.WithAcquirer(sources.Dir{
//	        SupplierDir: "fichiers_fournisseurs",
//	        PlatformDir: "fichiers_plateformes",
//	    }),
//	    stockmap.WithSuppliers("FOURNISSEUR_H", "RAD"),
//	    stockmap.WithPlatforms("SHOP"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := sm.Run(ctx)
package stockmap

import (
	"context"

	"github.com/droxline/stockmap/internal/sources"
	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/mapping"
	"github.com/droxline/stockmap/pkg/merge"
	"github.com/droxline/stockmap/pkg/report"
	"github.com/droxline/stockmap/pkg/supply"
)

// Stockmap runs stock reconciliations with a fixed configuration.
type Stockmap interface {
	// Run executes one full reconciliation pass.
	Run(ctx context.Context) (*RunResult, error)

	// Mappings returns the mapping store the instance was built with.
	Mappings() *mapping.Store
}

// RunResult is the outcome of one reconciliation pass.
type RunResult struct {
	Summary report.Summary
	Changes []merge.Change
	Supply  *supply.Cumulative
}

// stockmap is the internal implementation of the Stockmap interface.
type stockmap struct {
	config *config
}

// New creates a Stockmap instance with the given options.
func New(opts ...Option) (Stockmap, error) {
	s := &stockmap{config: defaultConfig()}

	for _, opt := range opts {
		if err := opt(s.config); err != nil {
			return nil, errors.NewConfigError("stockmap", "applying options", err)
		}
	}

	if s.config.store == nil {
		store, err := mapping.Load(s.config.mappingsPath)
		if err != nil {
			return nil, err
		}
		s.config.store = store
	}
	if s.config.acquirer == nil {
		return nil, errors.NewConfigError("stockmap", "an acquirer is required", nil)
	}
	return s, nil
}

// Mappings returns the mapping store the instance was built with.
func (s *stockmap) Mappings() *mapping.Store {
	return s.config.store
}

// entities returns the configured names for one side of the pipeline.
func (s *stockmap) entities(kind sources.Kind) []string {
	if kind == sources.KindSupplier {
		return s.config.suppliers
	}
	return s.config.platforms
}
