// Package report accumulates the statistics of one reconciliation run
// and renders them for operators. The accumulator is safe for
// concurrent use because platform merges run in parallel.
package report

import (
	"sort"
	"sync"
	"time"

	"github.com/agentstation/utc"
)

// FileResult records the outcome of processing one file.
type FileResult struct {
	Path  string
	Error string // "" on success
}

// Report collects what happened during a run.
type Report struct {
	mu        sync.Mutex
	startedAt utc.Time
	endedAt   utc.Time
	suppliers map[string]struct{}
	platforms map[string]struct{}
	succeeded []string
	failed    []FileResult
	products  int
	errors    []string
	warnings  []string
}

// New returns a report with its clock started.
func New() *Report {
	return &Report{
		startedAt: utc.Now(),
		suppliers: make(map[string]struct{}),
		platforms: make(map[string]struct{}),
	}
}

// End stops the report clock.
func (r *Report) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endedAt = utc.Now()
}

// AddSupplier marks a supplier as processed.
func (r *Report) AddSupplier(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[name] = struct{}{}
}

// AddPlatform marks a platform as processed.
func (r *Report) AddPlatform(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platforms[name] = struct{}{}
}

// AddFileResult records a processed file; a nil err means success, and a
// failure also counts as a run error.
func (r *Report) AddFileResult(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		r.succeeded = append(r.succeeded, path)
		return
	}
	r.failed = append(r.failed, FileResult{Path: path, Error: err.Error()})
	r.errors = append(r.errors, err.Error())
}

// AddProducts adds to the updated-products counter.
func (r *Report) AddProducts(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products += n
}

// AddError records a run-level error.
func (r *Report) AddError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

// AddWarning records a non-fatal anomaly.
func (r *Report) AddWarning(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, msg)
}

// Summary is an immutable snapshot of a report.
type Summary struct {
	StartedAt       utc.Time
	EndedAt         utc.Time
	Duration        time.Duration
	Suppliers       []string
	Platforms       []string
	FilesSuccessful []string
	FilesFailed     []FileResult
	ProductsUpdated int
	Errors          []string
	Warnings        []string
	Success         bool
}

// Summary snapshots the report. Entity names come back sorted so two
// runs over the same data summarize identically.
func (r *Report) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	ended := r.endedAt
	if ended.IsZero() {
		ended = utc.Now()
	}

	s := Summary{
		StartedAt:       r.startedAt,
		EndedAt:         ended,
		Duration:        ended.Sub(r.startedAt),
		Suppliers:       sortedKeys(r.suppliers),
		Platforms:       sortedKeys(r.platforms),
		FilesSuccessful: append([]string(nil), r.succeeded...),
		FilesFailed:     append([]FileResult(nil), r.failed...),
		ProductsUpdated: r.products,
		Errors:          append([]string(nil), r.errors...),
		Warnings:        append([]string(nil), r.warnings...),
	}
	s.Success = len(s.Errors) == 0 && len(s.FilesFailed) == 0
	return s
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
