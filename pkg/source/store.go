package source

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Store indexes definitions by name.
type Store struct {
	definitions map[string]Definition
}

// LoadFS walks fsys and parses every JSON/YAML file as a definition. Names
// must be unique across the tree.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("source: read %s: %w", path, err)
		}
		def, err := Parse(data, path)
		if err != nil {
			return err
		}
		if existing, exists := store.definitions[def.Name]; exists {
			return fmt.Errorf("source: duplicate definition %q (files %s and %s)", def.Name, existing.Source, path)
		}
		store.definitions[def.Name] = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Definition returns the named definition.
func (s *Store) Definition(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.definitions[name]
	return def, ok
}

// Names lists the definitions in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
