package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-autofixture/pkg/spec"
)

// PromptSpecs walks template and asks for a spec per primitive field,
// offering the current entry as the default. An empty answer keeps the
// default generation. Nested objects and arrays of objects are walked with
// their own sub-map.
func PromptSpecs(ctx context.Context, driver PromptDriver, template map[string]any, specs spec.Map) (spec.Map, error) {
	return promptObject(ctx, driver, "", template, specs)
}

func promptObject(ctx context.Context, driver PromptDriver, path string, template map[string]any, specs spec.Map) (spec.Map, error) {
	names := make([]string, 0, len(template))
	for name := range template {
		names = append(names, name)
	}
	sort.Strings(names)

	out := spec.Map{}
	for _, name := range names {
		fieldPath := name
		if path != "" {
			fieldPath = path + "." + name
		}
		current, _ := specs.Lookup(name)

		entry, err := promptField(ctx, driver, fieldPath, template[name], current)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			out[name] = entry
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func promptField(ctx context.Context, driver PromptDriver, path string, value, current any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		if spec.IsSkip(current) {
			return current, nil
		}
		nested, _ := spec.AsMap(current)
		sub, err := promptObject(ctx, driver, path, v, nested)
		if sub == nil || err != nil {
			return nil, err
		}
		return sub, nil
	case []any:
		if len(v) == 0 {
			return current, nil
		}
		if element, ok := v[0].(map[string]any); ok {
			nested, _ := spec.AsMap(current)
			sub, err := promptObject(ctx, driver, path+"[]", element, nested)
			if sub == nil || err != nil {
				return nil, err
			}
			return sub, nil
		}
		return promptText(ctx, driver, path, "", current)
	default:
		return promptText(ctx, driver, path, declaredType(value), current)
	}
}

// promptText asks for one spec string. declared is empty for array elements,
// which skip the compatibility check.
func promptText(ctx context.Context, driver PromptDriver, path, declared string, current any) (any, error) {
	def := ""
	if current != nil {
		def = spec.Describe(current)
	}

	message := fmt.Sprintf("Spec for %s", path)
	if declared != "" {
		message = fmt.Sprintf("Spec for %s (%s)", path, declared)
	}
	answer, err := driver.Input(ctx, InputConfig{
		Message: message,
		Default: def,
		Help:    "e.g. skip, string[8], 0 < integer < 10; empty keeps the default",
		Validator: func(text string) error {
			if current != nil && text == def {
				return nil
			}
			return validateSpec(declared, text)
		},
	})
	if err != nil {
		return nil, err
	}

	answer = strings.TrimRight(answer, "\r\n")
	if strings.TrimSpace(answer) == "" {
		return nil, nil
	}
	if current != nil && answer == def {
		// Keeps Constraint entries whose bounds have no spec text.
		return current, nil
	}
	if err := validateSpec(declared, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func validateSpec(declared, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if declared != "" && text != spec.Skip {
		if err := spec.CheckCompatible(declared, text); err != nil {
			return err
		}
	}
	_, err := spec.Parse(text)
	return err
}

func declaredType(value any) string {
	switch value.(type) {
	case bool:
		return spec.TypeBoolean
	case string:
		return spec.TypeString
	default:
		return spec.TypeNumber
	}
}
