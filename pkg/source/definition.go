package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-autofixture/pkg/spec"
)

// Definition is a template plus the specs that constrain it.
type Definition struct {
	Name     string
	Source   string
	Count    int
	Template map[string]any
	Specs    spec.Map
}

type definitionFile struct {
	Name     string         `json:"name" yaml:"name"`
	Count    int            `json:"count" yaml:"count"`
	Template map[string]any `json:"template" yaml:"template"`
	Specs    map[string]any `json:"specs" yaml:"specs"`
}

// LoadFile reads a definition from disk.
func LoadFile(ctx context.Context, path string) (Definition, error) {
	if err := ctx.Err(); err != nil {
		return Definition{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("source: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a definition. JSON is tried first, then YAML. source names
// the payload in errors and provides the default Name.
func Parse(data []byte, source string) (Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Definition{}, fmt.Errorf("source: file %s is empty", source)
	}

	file, err := decode(data)
	if err != nil {
		return Definition{}, fmt.Errorf("source: parse %s: %w", source, err)
	}
	if len(file.Template) == 0 {
		return Definition{}, fmt.Errorf("source: file %s has no template", source)
	}
	if file.Count < 0 {
		return Definition{}, fmt.Errorf("source: file %s has negative count %d", source, file.Count)
	}

	specs, err := spec.NormalizeMap(file.Specs)
	if err != nil {
		return Definition{}, fmt.Errorf("source: file %s: %w", source, err)
	}

	name := strings.TrimSpace(file.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	return Definition{
		Name:     name,
		Source:   source,
		Count:    file.Count,
		Template: file.Template,
		Specs:    specs,
	}, nil
}

func decode(data []byte) (definitionFile, error) {
	var file definitionFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if jsonErr := decoder.Decode(&file); jsonErr == nil {
		file.Template, _ = normalizeNumbers(file.Template).(map[string]any)
		return file, nil
	}

	file = definitionFile{}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return definitionFile{}, fmt.Errorf("invalid JSON or YAML: %w", err)
	}
	return file, nil
}

// normalizeNumbers replaces json.Number with int64 for whole numbers and
// float64 otherwise, so JSON templates classify like YAML ones.
func normalizeNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if !strings.ContainsAny(v.String(), ".eE") {
			if n, err := v.Int64(); err == nil {
				return n
			}
		}
		f, err := v.Float64()
		if err != nil {
			return v.String()
		}
		return f
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeNumbers(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeNumbers(item)
		}
		return out
	default:
		return v
	}
}
