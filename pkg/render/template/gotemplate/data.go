package gotemplate

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// toContext turns template data into a pongo2 context. Structs and other
// typed values are flattened through their JSON encoding, so templates
// address fields by their json names. Functions pass through unchanged.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	var root map[string]any
	switch v := data.(type) {
	case pongo2.Context:
		root = v
	case map[string]any:
		root = v
	default:
		normalized, err := normalize(v)
		if err != nil {
			return nil, err
		}
		m, ok := normalized.(map[string]any)
		if !ok {
			return nil, &json.UnsupportedTypeError{Type: reflect.TypeOf(data)}
		}
		return pongo2.Context(m), nil
	}

	out := make(pongo2.Context, len(root))
	for key, value := range root {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		converted, err := normalize(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, float64, int, int64:
		return v, nil
	case pongo2.Context:
		return normalizeMap(v)
	case map[string]any:
		return normalizeMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	}
	if isFunc(value) {
		return value, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func normalizeMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		converted, err := normalize(value)
		if err != nil {
			return nil, err
		}
		out[key] = converted
	}
	return out, nil
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
