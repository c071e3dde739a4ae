package jsonschema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	pkgopenapi "github.com/goliatone/go-autofixture/pkg/openapi"
	"github.com/goliatone/go-autofixture/pkg/spec"
)

// ErrDefinitionNotFound reports a definition name missing from $defs and
// definitions.
var ErrDefinitionNotFound = errors.New("jsonschema: definition not found")

// Document is a decoded JSON Schema payload.
type Document struct {
	location string
	root     map[string]any
}

// LoadFile reads and decodes a schema document from disk.
func LoadFile(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Load reads src through an OpenAPI loader, which covers files, fs.FS and
// HTTP, and decodes the payload as a schema.
func Load(ctx context.Context, loader pkgopenapi.Loader, src pkgopenapi.Source) (*Document, error) {
	raw, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return Parse(raw.Raw(), raw.Location())
}

// Parse decodes JSON, falling back to YAML.
func Parse(data []byte, location string) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("jsonschema: document %s is empty", location)
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		root = nil
		if yamlErr := yaml.Unmarshal(data, &root); yamlErr != nil {
			return nil, fmt.Errorf("jsonschema: parse %s: invalid JSON or YAML: %w", location, yamlErr)
		}
	}
	if root == nil {
		return nil, fmt.Errorf("jsonschema: document %s is not an object", location)
	}
	return &Document{location: location, root: root}, nil
}

// Location returns where the document was read from.
func (d *Document) Location() string { return d.location }

// Definitions lists the names under $defs and definitions, sorted.
func (d *Document) Definitions() []string {
	seen := map[string]struct{}{}
	for _, key := range []string{"$defs", "definitions"} {
		defs, _ := d.root[key].(map[string]any)
		for name := range defs {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema converts the named definition, or the root schema when name is
// empty.
func (d *Document) Schema(name string) (pkgopenapi.Schema, error) {
	node := any(d.root)
	ref := "#"
	if name != "" {
		var ok bool
		node, ref, ok = d.definition(name)
		if !ok {
			return pkgopenapi.Schema{}, fmt.Errorf("%w: %q in %s (available: %v)", ErrDefinitionNotFound, name, d.location, d.Definitions())
		}
	}

	conv := &converter{root: d.root}
	state := &resolveState{}
	state.push(ref)
	return conv.convert(node, ref, state)
}

// Template derives the template and specs of a definition (or the root).
func (d *Document) Template(name string) (map[string]any, spec.Map, error) {
	schema, err := d.Schema(name)
	if err != nil {
		return nil, nil, err
	}
	return pkgopenapi.TemplateFromSchema(schema)
}

func (d *Document) definition(name string) (any, string, bool) {
	for _, key := range []string{"$defs", "definitions"} {
		defs, _ := d.root[key].(map[string]any)
		if node, ok := defs[name]; ok {
			return node, "#/" + key + "/" + escapePointer(name), true
		}
	}
	return nil, "", false
}
