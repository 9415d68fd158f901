package sources

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/droxline/stockmap/pkg/errors"
)

// feed extensions the table reader understands
var feedExtensions = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xls":  true,
	".xlsx": true,
}

// Dir acquires entity files from local directories, the layout the FTP
// downloader fills: a file named exactly after the entity, or prefixed
// "<entity>-" when a supplier ships one file per warehouse.
type Dir struct {
	SupplierDir string
	PlatformDir string
}

// Acquire implements Acquirer. Matches come back sorted by name; for
// single-file entities only the first match is returned.
func (d Dir) Acquire(ctx context.Context, kind Kind, entity string, multiFile bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ErrCanceled
	}

	dir := d.SupplierDir
	if kind == KindPlatform {
		dir = d.PlatformDir
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapIO("readdir", dir, err)
	}

	var matches []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if !feedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if stem == entity || strings.HasPrefix(name, entity+"-") {
			matches = append(matches, filepath.Join(dir, name))
		}
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		return nil, errors.NewEntityError(string(kind), entity, errors.ErrNotFound)
	}
	if !multiFile {
		return matches[:1], nil
	}
	return matches, nil
}
