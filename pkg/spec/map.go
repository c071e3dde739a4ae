package spec

import (
	"fmt"
	"sort"
)

// Map holds per-field specs keyed by template field name. Values are spec
// strings, Constraint values, or nested maps for object and array-of-object
// fields.
type Map map[string]any

// Keys returns the field names in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the entry for name.
func (m Map) Lookup(name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	entry, ok := m[name]
	return entry, ok
}

// IsSkip reports whether an entry is the skip directive.
func IsSkip(entry any) bool {
	switch v := entry.(type) {
	case string:
		return v == Skip
	case Constraint:
		return v.Kind == KindSkip
	default:
		return false
	}
}

// AsMap returns the nested map held by an entry.
func AsMap(entry any) (Map, bool) {
	switch v := entry.(type) {
	case Map:
		return v, true
	case map[string]any:
		return Map(v), true
	default:
		return nil, false
	}
}

// Describe renders an entry for error messages.
func Describe(entry any) string {
	switch v := entry.(type) {
	case string:
		return v
	case Constraint:
		if v.Raw != "" {
			return v.Raw
		}
		return v.String()
	default:
		return fmt.Sprintf("%v", entry)
	}
}

// NormalizeMap converts decoded JSON/YAML values into a Map, recursing into
// nested maps. Spec strings and Constraint values are kept as they are.
func NormalizeMap(value any) (Map, error) {
	if value == nil {
		return nil, nil
	}
	return normalizeMap("", value)
}

func normalizeMap(path string, value any) (Map, error) {
	out := Map{}
	switch v := value.(type) {
	case Map:
		for key, entry := range v {
			if err := out.put(path, key, entry); err != nil {
				return nil, err
			}
		}
	case map[string]any:
		for key, entry := range v {
			if err := out.put(path, key, entry); err != nil {
				return nil, err
			}
		}
	case map[string]string:
		for key, entry := range v {
			out[key] = entry
		}
	case map[any]any:
		for rawKey, entry := range v {
			key, ok := rawKey.(string)
			if !ok {
				return nil, fmt.Errorf("spec: map key %v at %q is not a string", rawKey, path)
			}
			if err := out.put(path, key, entry); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("spec: value at %q must be a map, got %T", path, value)
	}
	return out, nil
}

func (m Map) put(parent, key string, entry any) error {
	path := key
	if parent != "" {
		path = parent + "." + key
	}

	switch v := entry.(type) {
	case string, Constraint:
		m[key] = v
	case *Constraint:
		if v == nil {
			return fmt.Errorf("spec: field %q has a nil constraint", path)
		}
		m[key] = *v
	case Map, map[string]any, map[string]string, map[any]any:
		nested, err := normalizeMap(path, v)
		if err != nil {
			return err
		}
		m[key] = nested
	default:
		return fmt.Errorf("spec: field %q has unsupported spec value of type %T", path, entry)
	}
	return nil
}
