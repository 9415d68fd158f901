// Package sources locates the raw files that belong to each supplier
// and platform for one run. Transport concerns (FTP download, upload)
// live outside the engine; an Acquirer only answers the question
// "which local files does this entity provide right now".
package sources

import (
	"context"

	"github.com/droxline/stockmap/pkg/logging"
	"github.com/droxline/stockmap/pkg/mapping"
)

// Kind distinguishes the two entity categories.
type Kind string

const (
	KindSupplier Kind = "supplier"
	KindPlatform Kind = "platform"
)

// Acquirer resolves an entity's raw files. Implementations must return
// files in a stable order; multiFile controls whether every matching
// file is returned or just the first.
type Acquirer interface {
	Acquire(ctx context.Context, kind Kind, entity string, multiFile bool) ([]string, error)
}

// Entity is a supplier or platform that passed the readiness checks:
// its mapping is complete and at least one raw file exists.
type Entity struct {
	Name    string
	Mapping mapping.Mapping
	Files   []string
}

// Ready filters names down to processable entities. An entity drops out
// when its mapping is missing or incomplete, or when the acquirer finds
// no file for it; each drop is logged with its reason so a silent
// no-show never goes unnoticed.
func Ready(ctx context.Context, acq Acquirer, store *mapping.Store, kind Kind, names []string) []Entity {
	log := logging.Ctx(ctx)

	ready := make([]Entity, 0, len(names))
	for _, name := range names {
		m, err := store.Require(name)
		if err != nil {
			log.Warn().
				Str(string(kind), name).
				Err(err).
				Msg("entity skipped: mapping not usable")
			continue
		}

		files, err := acq.Acquire(ctx, kind, name, m.MultiFile)
		if err != nil || len(files) == 0 {
			log.Warn().
				Str(string(kind), name).
				Err(err).
				Msg("entity skipped: no file acquired")
			continue
		}

		ready = append(ready, Entity{Name: name, Mapping: m, Files: files})
	}
	return ready
}
