// Package snapshot persists updated platform tables. Every merge
// produces two copies under the platform's own directory: a stable
// "latest" file that uploads and humans point at, and a timestamped
// archive copy that makes any past run auditable.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/utc"

	"github.com/droxline/stockmap/pkg/constants"
	"github.com/droxline/stockmap/pkg/errors"
	"github.com/droxline/stockmap/pkg/logging"
	"github.com/droxline/stockmap/pkg/tabular"
)

// Writer writes snapshots under Root, one subdirectory per platform.
type Writer struct {
	Root string
}

// Saved names the two files one snapshot produced.
type Saved struct {
	Latest  string
	Archive string
}

// Save writes the table as <entity>/<entity>-latest<ext> and an archive
// copy named with the run timestamp. The extension and write options
// come from the source file, so a semicolon-delimited cp1252 platform
// stays exactly that on disk.
func (w Writer) Save(ctx context.Context, entity, sourcePath string, t *tabular.Table, opts tabular.WriteOptions) (Saved, error) {
	if err := ctx.Err(); err != nil {
		return Saved{}, errors.ErrCanceled
	}

	dir := filepath.Join(w.Root, entity)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return Saved{}, errors.WrapIO("mkdir", dir, err)
	}

	ext := filepath.Ext(sourcePath)
	if ext == "" {
		ext = ".csv"
	}
	timestamp := utc.Now().Format(constants.ArchiveTimestampLayout)

	saved := Saved{
		Latest:  filepath.Join(dir, fmt.Sprintf("%s-%s%s", entity, constants.LatestSuffix, ext)),
		Archive: filepath.Join(dir, fmt.Sprintf("%s-%s%s", entity, timestamp, ext)),
	}

	if err := tabular.Write(saved.Latest, t, opts); err != nil {
		return Saved{}, err
	}
	if err := tabular.Write(saved.Archive, t, opts); err != nil {
		return Saved{}, err
	}

	logging.Ctx(ctx).Info().
		Str("platform", entity).
		Str("latest", saved.Latest).
		Str("archive", saved.Archive).
		Msg("snapshot written")
	return saved, nil
}
