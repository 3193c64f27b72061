package plan

import (
	"fmt"
	"regexp"

	"scenario-planner/internal/common"
	"scenario-planner/internal/ledger"
)

// pathParam matches OpenAPI path template parameters like {userId}.
var pathParam = regexp.MustCompile(`\{([^{}/]+)\}`)

// expandPath fills path template parameters from params. Parameters with no
// value become runtime references. It returns the expanded path and the
// names of the params it consumed.
func expandPath(template string, params map[string]any) (string, map[string]bool) {
	consumed := make(map[string]bool)

	out := pathParam.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]

		v, ok := params[name]
		if !ok {
			return ledger.Placeholder(name)
		}

		consumed[name] = true

		return paramText(v)
	})

	return out, consumed
}

// queryArgs returns the params not consumed by the path, sorted by name.
func queryArgs(params map[string]any, consumed map[string]bool) map[string]string {
	out := make(map[string]string)

	for _, name := range common.SortedKeys(params) {
		if consumed[name] {
			continue
		}

		out[name] = paramText(params[name])
	}

	return out
}

func paramText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprint(int64(t))
		}
	}

	return fmt.Sprint(v)
}
