package stockmap

import (
	"github.com/droxline/stockmap/internal/sources"
	"github.com/droxline/stockmap/pkg/constants"
	"github.com/droxline/stockmap/pkg/mapping"
	"github.com/droxline/stockmap/pkg/report"
)

// Option is a function that configures a Stockmap instance.
type Option func(*config) error

// config holds the resolved configuration of one Stockmap instance.
type config struct {
	store        *mapping.Store
	mappingsPath string
	acquirer     sources.Acquirer
	sink         report.Sink
	workers      int
	outputDir    string
	dryRun       bool
	suppliers    []string
	platforms    []string
}

func defaultConfig() *config {
	return &config{
		mappingsPath: constants.DefaultMappingsFile,
		sink:         report.LogSink{},
		workers:      constants.DefaultWorkers,
		outputDir:    constants.DefaultOutputDir,
	}
}

// WithMappings configures an already loaded mapping store.
func WithMappings(store *mapping.Store) Option {
	return func(c *config) error {
		c.store = store
		return nil
	}
}

// WithMappingsFile configures the YAML mapping store path, loaded
// lazily by New when no store was provided.
func WithMappingsFile(path string) Option {
	return func(c *config) error {
		c.mappingsPath = path
		return nil
	}
}

// WithAcquirer configures where raw entity files come from.
func WithAcquirer(acq sources.Acquirer) Option {
	return func(c *config) error {
		c.acquirer = acq
		return nil
	}
}

// WithSink configures where run summaries are published.
func WithSink(sink report.Sink) Option {
	return func(c *config) error {
		c.sink = sink
		return nil
	}
}

// WithWorkers bounds how many platforms merge concurrently.
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 1 {
			n = 1
		}
		if n > constants.MaxWorkers {
			n = constants.MaxWorkers
		}
		c.workers = n
		return nil
	}
}

// WithOutputDir configures where updated platform snapshots land.
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		c.outputDir = dir
		return nil
	}
}

// WithDryRun computes merges and change records without writing any
// platform file.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithSuppliers configures which suppliers a run ingests.
func WithSuppliers(names ...string) Option {
	return func(c *config) error {
		c.suppliers = names
		return nil
	}
}

// WithPlatforms configures which platforms a run updates.
func WithPlatforms(names ...string) Option {
	return func(c *config) error {
		c.platforms = names
		return nil
	}
}
