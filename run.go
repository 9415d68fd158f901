package stockmap

import (
	"context"
	"sort"
	"sync"

	"github.com/agentstation/utc"

	"github.com/droxline/stockmap/internal/sources"
	"github.com/droxline/stockmap/pkg/constants"
	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/logging"
	"github.com/droxline/stockmap/pkg/merge"
	"github.com/droxline/stockmap/pkg/report"
	"github.com/droxline/stockmap/pkg/snapshot"
	"github.com/droxline/stockmap/pkg/supply"
)

// Run executes one full reconciliation pass using staged execution.
func (s *stockmap) Run(ctx context.Context) (*RunResult, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Tag the run in the log context
	runID := utc.Now().Format(constants.ArchiveTimestampLayout)
	ctx = logging.WithRunID(ctx, runID)
	log := logging.Ctx(ctx)
	log.Info().Msg("starting stock update run")

	rep := report.New()

	// Step 2: Readiness filtering on both sides
	supplierEntities := sources.Ready(ctx, s.config.acquirer, s.config.store,
		sources.KindSupplier, s.entities(sources.KindSupplier))
	platformEntities := sources.Ready(ctx, s.config.acquirer, s.config.store,
		sources.KindPlatform, s.entities(sources.KindPlatform))
	if len(supplierEntities) == 0 {
		return nil, s.fail(ctx, rep, errors.ErrNoSuppliers)
	}
	if len(platformEntities) == 0 {
		return nil, s.fail(ctx, rep, errors.ErrNoPlatforms)
	}

	// Step 3: Ingest every supplier; one failure skips that supplier only
	datasets := s.ingestSuppliers(ctx, supplierEntities, rep)
	if len(datasets) == 0 {
		return nil, s.fail(ctx, rep, errors.ErrNoSuppliers)
	}

	// Step 4: Aggregate once into the cumulative supply
	cumulative := supply.Aggregate(datasets)
	log.Info().
		Int("suppliers", len(datasets)).
		Int("products", cumulative.Len()).
		Msg("cumulative supply aggregated")

	// Step 5: Merge every platform against the same cumulative supply
	changes, merged := s.mergePlatforms(ctx, platformEntities, cumulative, rep)
	if merged == 0 {
		return nil, s.fail(ctx, rep, errors.ErrNoPlatforms)
	}

	// Step 6: Finish and publish the report
	return &RunResult{
		Summary: s.publish(ctx, rep),
		Changes: changes,
		Supply:  cumulative,
	}, nil
}

// publish closes the report clock and pushes the summary to the sink.
// Publication failure never fails the run; the summary is still returned.
func (s *stockmap) publish(ctx context.Context, rep *report.Report) report.Summary {
	rep.End()
	summary := rep.Summary()
	if err := s.config.sink.Publish(ctx, summary); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("report publication failed")
	}
	return summary
}

// fail records a run-level failure on the report, publishes it so the
// per-file diagnostics accumulated so far reach operators, and returns
// the error. An all-fail run still produces a report.
func (s *stockmap) fail(ctx context.Context, rep *report.Report, err error) error {
	rep.AddError(err.Error())
	s.publish(ctx, rep)
	return err
}

// ingestSuppliers reduces every ready supplier to a dataset. Failed
// suppliers are recorded on the report and skipped.
func (s *stockmap) ingestSuppliers(ctx context.Context, entities []sources.Entity, rep *report.Report) []*supply.Dataset {
	datasets := make([]*supply.Dataset, 0, len(entities))
	for _, entity := range entities {
		sctx := logging.WithSupplier(ctx, entity.Name)

		ds, err := supply.Ingest(sctx, entity.Name, entity.Mapping, entity.Files...)
		if err != nil {
			logging.Ctx(sctx).Error().Err(err).Msg("supplier ingestion failed")
			rep.AddError(err.Error())
			for _, file := range entity.Files {
				rep.AddFileResult(file, err)
			}
			continue
		}

		rep.AddSupplier(entity.Name)
		for _, file := range ds.Files {
			rep.AddFileResult(file, nil)
		}
		datasets = append(datasets, ds)
	}
	return datasets
}

// mergePlatforms merges the cumulative supply into every ready platform
// with a bounded worker pool. Each platform is isolated: an unreadable
// file or unresolvable mapping fails that platform alone. Returns the
// collected change records and how many platforms merged.
func (s *stockmap) mergePlatforms(ctx context.Context, entities []sources.Entity, cumulative *supply.Cumulative, rep *report.Report) ([]merge.Change, int) {
	writer := snapshot.Writer{Root: s.config.outputDir}

	var (
		mu      sync.Mutex
		changes []merge.Change
		merged  int
	)

	sem := make(chan struct{}, s.config.workers)
	var wg sync.WaitGroup

	for _, entity := range entities {
		wg.Add(1)
		sem <- struct{}{}
		go func(entity sources.Entity) {
			defer wg.Done()
			defer func() { <-sem }()

			pctx := logging.WithPlatform(ctx, entity.Name)
			path := entity.Files[0]

			result, err := merge.Merge(pctx, entity.Name, entity.Mapping, path, cumulative)
			if err != nil {
				logging.Ctx(pctx).Error().Err(err).Msg("platform merge failed")
				rep.AddFileResult(path, err)
				return
			}

			if !s.config.dryRun {
				saved, err := writer.Save(pctx, entity.Name, path, result.Table, result.WriteOptions())
				if err != nil {
					logging.Ctx(pctx).Error().Err(err).Msg("snapshot write failed")
					rep.AddFileResult(path, err)
					return
				}
				rep.AddFileResult(saved.Latest, nil)
			}

			rep.AddPlatform(entity.Name)
			rep.AddProducts(len(result.Changes))

			mu.Lock()
			changes = append(changes, result.Changes...)
			merged++
			mu.Unlock()
		}(entity)
	}
	wg.Wait()

	// Concurrent completion order is not stable; sort for reproducible
	// change logs.
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Platform != changes[j].Platform {
			return changes[i].Platform < changes[j].Platform
		}
		return changes[i].ProductID < changes[j].ProductID
	})
	return changes, merged
}
