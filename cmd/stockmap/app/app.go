// Package app provides the application context and dependency wiring
// for the stockmap CLI: configuration loading, logger setup, and lazy
// construction of the engine instance commands share.
package app

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	stockmap "github.com/droxline/stockmap"
	"github.com/droxline/stockmap/internal/sources"
	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/mapping"
	"github.com/droxline/stockmap/pkg/report"
)

// App carries the CLI's shared dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger

	mu    sync.Mutex
	store *mapping.Store
}

// New creates an App with configuration loaded from flags, environment,
// .env files, and the config file.
func New(version, commit, date string) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}

	logger := NewLogger(config)
	return &App{
		version: version,
		commit:  commit,
		date:    date,
		config:  config,
		logger:  &logger,
	}, nil
}

// Version returns the build version.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Store returns the mapping store, loading it on first use.
func (a *App) Store() (*mapping.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}

	store, err := mapping.Load(a.config.MappingsFile)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// Stockmap builds an engine instance from the current configuration.
func (a *App) Stockmap(overrides ...stockmap.Option) (stockmap.Stockmap, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}

	sink := report.MultiSink{report.LogSink{}}
	if a.config.ReportDir != "" {
		sink = append(sink, report.FileSink{Dir: a.config.ReportDir})
	}

	opts := []stockmap.Option{
		stockmap.WithMappings(store),
		stockmap.WithAcquirer(sources.Dir{
			SupplierDir: a.config.SupplierDir,
			PlatformDir: a.config.PlatformDir,
		}),
		stockmap.WithOutputDir(a.config.OutputDir),
		stockmap.WithWorkers(a.config.Workers),
		stockmap.WithSink(sink),
		stockmap.WithSuppliers(a.config.Suppliers...),
		stockmap.WithPlatforms(a.config.Platforms...),
	}
	return stockmap.New(append(opts, overrides...)...)
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
