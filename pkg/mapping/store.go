package mapping

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/droxline/stockmap/pkg/constants"
	"github.com/droxline/stockmap/pkg/errors"
)

// Store is the on-disk registry of entity mappings, keyed by entity
// name. It is loaded once per run and passed explicitly to every
// component that needs it.
type Store struct {
	path     string
	entities map[string]Mapping
}

// Load reads the YAML mapping store at path. A missing file yields an
// empty store so a fresh install starts without configuration.
func Load(path string) (*Store, error) {
	s := &Store{path: path, entities: make(map[string]Mapping)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := yaml.Unmarshal(data, &s.entities); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if s.entities == nil {
		s.entities = make(map[string]Mapping)
	}
	return s, nil
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the mapping for entity, if configured.
func (s *Store) Lookup(entity string) (Mapping, bool) {
	m, ok := s.entities[entity]
	return m, ok
}

// Require returns a validated mapping or explains what is missing.
func (s *Store) Require(entity string) (Mapping, error) {
	m, ok := s.entities[entity]
	if !ok {
		return Mapping{}, errors.NewEntityError("mapping", entity, errors.ErrNotFound)
	}
	if err := m.Validate(entity); err != nil {
		return Mapping{}, err
	}
	return m, nil
}

// Set installs or replaces the mapping for entity.
func (s *Store) Set(entity string, m Mapping) {
	s.entities[entity] = m
}

// Delete removes the mapping for entity.
func (s *Store) Delete(entity string) {
	delete(s.entities, entity)
}

// Entities lists every configured entity name in ascending order.
func (s *Store) Entities() []string {
	names := make([]string, 0, len(s.entities))
	for name := range s.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cleanup drops mappings whose entity is no longer registered and
// returns the removed names. Orphans accumulate when suppliers or
// platforms are deleted without touching the mapping file.
func (s *Store) Cleanup(registered []string) []string {
	keep := make(map[string]struct{}, len(registered))
	for _, name := range registered {
		keep[name] = struct{}{}
	}

	var removed []string
	for name := range s.entities {
		if _, ok := keep[name]; !ok {
			delete(s.entities, name)
			removed = append(removed, name)
		}
	}
	sort.Strings(removed)
	return removed
}

// Save writes the store back to the path it was loaded from.
func (s *Store) Save() error {
	return s.SaveTo(s.path)
}

// SaveTo serializes the store as YAML to the given path, creating the
// parent directory when needed.
func (s *Store) SaveTo(path string) error {
	data, err := yaml.Marshal(s.entities)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
