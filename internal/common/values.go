package common

import "fmt"

// StringKeys returns v with every map[any]any, at any depth, rewritten as
// map[string]any. YAML decodes mappings with non-string keys ("1: a") that
// way, and neither JSON encoding nor ${name} scanning accept them.
func StringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = StringKeys(item)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = StringKeys(item)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = StringKeys(item)
		}

		return out
	default:
		return v
	}
}
