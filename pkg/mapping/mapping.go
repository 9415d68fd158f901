// Package mapping declares per-entity column mappings and resolves them
// against ingested tables. A mapping names, by position or by fuzzy label,
// which column of an entity's feed holds the product reference and which
// holds the quantity. Mappings live in a YAML store keyed by entity name
// and are loaded once per run into an explicit Store value.
package mapping

import (
	"strings"

	"github.com/droxline/stockmap/pkg/errors"
)

// Target identifies what a mapped column feeds.
type Target string

const (
	// TargetReference marks the product-identifier column.
	TargetReference Target = "reference"
	// TargetQuantity marks the stock-quantity column.
	TargetQuantity Target = "quantity"
)

// Source is a declared column selector: either a column label or the
// decimal string form of a zero-based column index. YAML integers and
// strings both decode into it so "source: 3" and "source: Bestand" work.
type Source string

// UnmarshalYAML accepts scalar YAML values of any type.
func (s *Source) UnmarshalYAML(data []byte) error {
	text := strings.TrimSpace(string(data))
	text = strings.Trim(text, `"'`)
	*s = Source(text)
	return nil
}

// Entry binds one source column to one target.
type Entry struct {
	Source Source `yaml:"source"`
	Target Target `yaml:"target"`
}

// Mapping is the full column configuration of one entity.
type Mapping struct {
	Entries    []Entry `yaml:"mappings"`
	Headerless bool    `yaml:"no_header,omitempty"`
	MultiFile  bool    `yaml:"multi_file,omitempty"`
}

// SourceFor returns the source for the first entry with the given target.
func (m Mapping) SourceFor(target Target) (Source, bool) {
	for _, e := range m.Entries {
		if e.Target == target {
			return e.Source, true
		}
	}
	return "", false
}

// Validate checks that both the reference and the quantity target are
// configured. An entity failing validation is skipped before any read
// attempt.
func (m Mapping) Validate(entity string) error {
	if _, ok := m.SourceFor(TargetReference); !ok {
		return errors.NewMappingError(entity, string(TargetReference))
	}
	if _, ok := m.SourceFor(TargetQuantity); !ok {
		return errors.NewMappingError(entity, string(TargetQuantity))
	}
	return nil
}
