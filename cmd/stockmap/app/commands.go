package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	stockmap "github.com/droxline/stockmap"
	"github.com/droxline/stockmap/internal/cmd/output"
	"github.com/droxline/stockmap/internal/sources"
	"github.com/droxline/stockmap/pkg/logging"
	"github.com/droxline/stockmap/pkg/mapping"
	"github.com/droxline/stockmap/pkg/stock"
)

// NewRunCommand creates the run command.
func (a *App) NewRunCommand() *cobra.Command {
	var (
		dryRun    bool
		suppliers []string
		platforms []string
		workers   int
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a full stock update",
		Long: `Ingest every configured supplier, aggregate the cumulative supply,
and merge it into every configured platform file. Updated platform
files are written as latest + timestamped archive snapshots.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var overrides []stockmap.Option
			if dryRun {
				overrides = append(overrides, stockmap.WithDryRun(true))
			}
			if len(suppliers) > 0 {
				overrides = append(overrides, stockmap.WithSuppliers(suppliers...))
			}
			if len(platforms) > 0 {
				overrides = append(overrides, stockmap.WithPlatforms(platforms...))
			}
			if workers > 0 {
				overrides = append(overrides, stockmap.WithWorkers(workers))
			}
			if outputDir != "" {
				overrides = append(overrides, stockmap.WithOutputDir(outputDir))
			}

			sm, err := a.Stockmap(overrides...)
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), a.logger)
			result, err := sm.Run(ctx)
			if err != nil {
				return err
			}
			return a.printRunResult(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute changes without writing platform files")
	cmd.Flags().StringSliceVar(&suppliers, "suppliers", nil, "suppliers to ingest (default: configured list)")
	cmd.Flags().StringSliceVar(&platforms, "platforms", nil, "platforms to update (default: configured list)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent platform merges")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for updated platform snapshots")
	return cmd
}

// printRunResult renders a run result in the configured format.
func (a *App) printRunResult(cmd *cobra.Command, result *stockmap.RunResult) error {
	format := output.DetectFormat(a.config.Format)
	formatter := output.NewFormatter(format)

	if format != output.FormatTable {
		return formatter.Format(cmd.OutOrStdout(), result)
	}

	rows := make([][]string, 0, len(result.Changes))
	for _, change := range result.Changes {
		rows = append(rows, []string{
			change.Platform,
			change.ProductID,
			strconv.Itoa(change.OldQuantity),
			strconv.Itoa(change.NewQuantity),
			formatBreakdown(change.Suppliers),
		})
	}
	if len(rows) > 0 {
		err := formatter.Format(cmd.OutOrStdout(), output.Data{
			Headers: []string{"Platform", "Product", "Old", "New", "Suppliers"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}
	}

	s := result.Summary
	fmt.Fprintf(cmd.OutOrStdout(),
		"%d supplier(s), %d platform(s), %d change(s), %d file(s) failed, duration %s\n",
		len(s.Suppliers), len(s.Platforms), len(result.Changes), len(s.FilesFailed),
		s.Duration.Round(time.Millisecond))
	return nil
}

// formatBreakdown renders a per-supplier contribution map as
// "name:qty" pairs in stable order.
func formatBreakdown(breakdown map[string]int) string {
	if len(breakdown) == 0 {
		return ""
	}
	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%d", name, breakdown[name]))
	}
	return strings.Join(parts, ", ")
}

// NewSuppliersCommand creates the suppliers command.
func (a *App) NewSuppliersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suppliers",
		Short: "List configured suppliers and their readiness",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printEntities(cmd, sources.KindSupplier, a.config.Suppliers)
		},
	}
}

// NewPlatformsCommand creates the platforms command.
func (a *App) NewPlatformsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List configured platforms and their readiness",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printEntities(cmd, sources.KindPlatform, a.config.Platforms)
		},
	}
}

// printEntities renders one side's entities with mapping and file
// status, mirroring the checks a run applies before processing.
func (a *App) printEntities(cmd *cobra.Command, kind sources.Kind, names []string) error {
	store, err := a.Store()
	if err != nil {
		return err
	}
	acquirer := sources.Dir{
		SupplierDir: a.config.SupplierDir,
		PlatformDir: a.config.PlatformDir,
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		status := "ready"
		files := 0

		m, err := store.Require(name)
		if err != nil {
			status = err.Error()
		} else {
			acquired, err := acquirer.Acquire(cmd.Context(), kind, name, m.MultiFile)
			if err != nil {
				status = "no file"
			} else {
				files = len(acquired)
			}
		}
		rows = append(rows, []string{name, status, strconv.Itoa(files)})
	}

	formatter := output.NewFormatter(output.DetectFormat(a.config.Format))
	return formatter.Format(cmd.OutOrStdout(), output.Data{
		Headers: []string{cases.Title(language.English).String(string(kind)), "Status", "Files"},
		Rows:    rows,
	})
}

// NewMappingsCommand creates the mappings command.
func (a *App) NewMappingsCommand() *cobra.Command {
	var cleanup bool

	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "List the column mapping store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.Store()
			if err != nil {
				return err
			}

			if cleanup {
				registered := append(append([]string(nil), a.config.Suppliers...), a.config.Platforms...)
				removed := store.Cleanup(registered)
				if len(removed) > 0 {
					if err := store.Save(); err != nil {
						return err
					}
					a.logger.Info().Strs("removed", removed).Msg("orphan mappings removed")
				}
			}

			rows := make([][]string, 0)
			for _, entity := range store.Entities() {
				m, _ := store.Lookup(entity)
				ref, _ := m.SourceFor(mapping.TargetReference)
				qty, _ := m.SourceFor(mapping.TargetQuantity)
				rows = append(rows, []string{
					entity,
					string(ref),
					string(qty),
					strconv.FormatBool(m.Headerless),
					strconv.FormatBool(m.MultiFile),
				})
			}

			formatter := output.NewFormatter(output.DetectFormat(a.config.Format))
			return formatter.Format(cmd.OutOrStdout(), output.Data{
				Headers: []string{"Entity", "Reference", "Quantity", "Headerless", "MultiFile"},
				Rows:    rows,
			})
		},
	}

	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "drop mappings for entities no longer configured")
	return cmd
}

// NewNormalizeCommand creates the normalize command, a debugging aid
// that shows how raw quantity cells are interpreted.
func (a *App) NewNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <value>...",
		Short: "Show how raw stock values normalize",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(args))
			for _, raw := range args {
				rows = append(rows, []string{raw, strconv.Itoa(stock.Normalize(raw))})
			}

			formatter := output.NewFormatter(output.DetectFormat(a.config.Format))
			return formatter.Format(cmd.OutOrStdout(), output.Data{
				Headers: []string{"Raw", "Quantity"},
				Rows:    rows,
			})
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stockmap %s (commit %s, built %s)\n",
				a.version, a.commit, a.date)
		},
	}
}
