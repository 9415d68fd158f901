package report

import (
	"context"
	"os"
	"path/filepath"

	"github.com/droxline/stockmap/pkg/constants"
	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/logging"
)

// Sink publishes a finished run summary somewhere an operator will see
// it. Outer surfaces (mail, dashboards) implement this interface; the
// engine ships a log sink and a markdown file sink.
type Sink interface {
	Publish(ctx context.Context, s Summary) error
}

// LogSink writes the summary to the structured log.
type LogSink struct{}

// Publish implements Sink.
func (LogSink) Publish(ctx context.Context, s Summary) error {
	logging.Ctx(ctx).Info().
		Bool("success", s.Success).
		Dur("duration", s.Duration).
		Int("suppliers", len(s.Suppliers)).
		Int("platforms", len(s.Platforms)).
		Int("files_written", len(s.FilesSuccessful)).
		Int("files_failed", len(s.FilesFailed)).
		Int("products_updated", s.ProductsUpdated).
		Int("errors", len(s.Errors)).
		Int("warnings", len(s.Warnings)).
		Msg("run finished")
	return nil
}

// FileSink renders the summary as markdown into a timestamped file
// under Dir.
type FileSink struct {
	Dir string
}

// Publish implements Sink.
func (f FileSink) Publish(ctx context.Context, s Summary) error {
	body, err := s.Markdown()
	if err != nil {
		return errors.WrapParse("markdown", "report", err)
	}
	if err := os.MkdirAll(f.Dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", f.Dir, err)
	}

	name := "report-" + s.StartedAt.Format(constants.ArchiveTimestampLayout) + ".md"
	path := filepath.Join(f.Dir, name)
	if err := os.WriteFile(path, []byte(body), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.Ctx(ctx).Info().Str("file", path).Msg("report written")
	return nil
}

// MultiSink fans a summary out to several sinks, returning the first
// error after trying all of them.
type MultiSink []Sink

// Publish implements Sink.
func (m MultiSink) Publish(ctx context.Context, s Summary) error {
	var firstErr error
	for _, sink := range m {
		if err := sink.Publish(ctx, s); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
