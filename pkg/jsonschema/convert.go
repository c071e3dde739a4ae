package jsonschema

import (
	"fmt"
	"math"
	"strings"

	pkgopenapi "github.com/goliatone/go-autofixture/pkg/openapi"
)

type converter struct {
	root map[string]any
}

func (c *converter) convert(node any, ref string, state *resolveState) (pkgopenapi.Schema, error) {
	obj, ok := node.(map[string]any)
	if !ok {
		return pkgopenapi.Schema{}, fmt.Errorf("jsonschema: schema at %s is not an object", ref)
	}

	if target, _ := obj["$ref"].(string); target != "" {
		return c.convertRef(obj, target, state)
	}

	schema := pkgopenapi.Schema{
		Type:    schemaType(obj["type"]),
		Default: obj["default"],
		Fixture: extension(obj),
	}
	schema.Format, _ = obj["format"].(string)
	if enum, ok := obj["enum"].([]any); ok {
		schema.Enum = enum
	}
	if required, ok := obj["required"].([]any); ok {
		for _, name := range required {
			if text, ok := name.(string); ok {
				schema.Required = append(schema.Required, text)
			}
		}
	}

	if props, ok := obj["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(props))
		for name, prop := range props {
			child, err := c.convert(prop, ref+"/properties/"+escapePointer(name), state)
			if err != nil {
				return pkgopenapi.Schema{}, err
			}
			schema.Properties[name] = child
		}
	}
	if items, ok := obj["items"]; ok {
		child, err := c.convert(items, ref+"/items", state)
		if err != nil {
			return pkgopenapi.Schema{}, err
		}
		schema.Items = &child
	}

	schema.MinLength = intValue(obj["minLength"])
	schema.MaxLength = intValue(obj["maxLength"])
	schema.Minimum, schema.Maximum = bounds(obj, schema.Type == "integer")

	if members, ok := obj["allOf"].([]any); ok {
		for i, member := range members {
			part, err := c.convert(member, fmt.Sprintf("%s/allOf/%d", ref, i), state)
			if err != nil {
				return pkgopenapi.Schema{}, err
			}
			schema.Merge(part)
		}
	}
	return schema, nil
}

// convertRef expands a local reference. A reference already being expanded
// becomes a Recursive stub. Keywords next to the $ref only contribute the
// fixture extension.
func (c *converter) convertRef(obj map[string]any, target string, state *resolveState) (pkgopenapi.Schema, error) {
	if state.contains(target) {
		return pkgopenapi.Schema{Ref: target, Recursive: true, Fixture: extension(obj)}, nil
	}
	if len(state.stack) >= maxRefDepth {
		return pkgopenapi.Schema{}, fmt.Errorf("jsonschema: ref depth exceeds %d at %s", maxRefDepth, target)
	}

	resolved, err := resolveRef(c.root, target)
	if err != nil {
		return pkgopenapi.Schema{}, err
	}
	state.push(target)
	schema, err := c.convert(resolved, target, state)
	state.pop()
	if err != nil {
		return pkgopenapi.Schema{}, err
	}

	schema.Ref = target
	if fixture := extension(obj); fixture != "" {
		schema.Fixture = fixture
	}
	return schema, nil
}

// schemaType joins a type list the way the OpenAPI parser does, so nullable
// unions resolve to their first non-null member.
func schemaType(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		types := make([]string, 0, len(v))
		for _, item := range v {
			if text, ok := item.(string); ok {
				types = append(types, text)
			}
		}
		return strings.Join(types, ",")
	default:
		return ""
	}
}

// bounds returns inclusive bounds. Draft 6+ exclusive bounds are numbers;
// draft 4 uses booleans that modify minimum/maximum. Integer exclusive bounds
// move to the next integer inside the range.
func bounds(obj map[string]any, integer bool) (*float64, *float64) {
	lower := floatValue(obj["minimum"])
	upper := floatValue(obj["maximum"])

	exclusiveLower := floatValue(obj["exclusiveMinimum"])
	if flag, ok := obj["exclusiveMinimum"].(bool); ok && flag {
		exclusiveLower, lower = lower, nil
	}
	exclusiveUpper := floatValue(obj["exclusiveMaximum"])
	if flag, ok := obj["exclusiveMaximum"].(bool); ok && flag {
		exclusiveUpper, upper = upper, nil
	}

	if exclusiveLower != nil {
		value := *exclusiveLower
		if integer {
			value = math.Floor(value) + 1
		}
		lower = &value
	}
	if exclusiveUpper != nil {
		value := *exclusiveUpper
		if integer {
			value = math.Ceil(value) - 1
		}
		upper = &value
	}
	return lower, upper
}

func floatValue(value any) *float64 {
	var out float64
	switch v := value.(type) {
	case float64:
		out = v
	case int:
		out = float64(v)
	case int64:
		out = float64(v)
	case uint64:
		out = float64(v)
	default:
		return nil
	}
	return &out
}

func intValue(value any) *int {
	f := floatValue(value)
	if f == nil || *f < 0 {
		return nil
	}
	out := int(*f)
	return &out
}

func extension(obj map[string]any) string {
	text, _ := obj[pkgopenapi.ExtensionKey].(string)
	return text
}
