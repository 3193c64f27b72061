// Package ledger tracks which variables are known at each point of a
// scenario and checks "${name}" references against that set.
package ledger

import (
	"regexp"
	"slices"

	"github.com/duke-git/lancet/v2/slice"

	"scenario-planner/internal/common"
)

var (
	// referencePattern matches runtime variable references like ${userId}.
	referencePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	namePattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// IsValidName reports whether name can be referenced as ${name}.
func IsValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Placeholder returns the runtime reference form of name.
func Placeholder(name string) string {
	return "${" + name + "}"
}

// Ledger is an immutable set of known variable names.
type Ledger struct {
	known map[string]struct{}
}

// New returns a ledger holding the given global names.
func New(globals ...string) Ledger {
	return Ledger{}.With(globals...)
}

// With returns a new ledger that also knows names. The receiver is unchanged.
func (l Ledger) With(names ...string) Ledger {
	known := make(map[string]struct{}, len(l.known)+len(names))
	for name := range l.known {
		known[name] = struct{}{}
	}

	for _, name := range names {
		known[name] = struct{}{}
	}

	return Ledger{known: known}
}

// Knows reports whether name is defined.
func (l Ledger) Knows(name string) bool {
	_, ok := l.known[name]

	return ok
}

// Len returns the number of known names.
func (l Ledger) Len() int {
	return len(l.known)
}

// Names returns the known names in sorted order.
func (l Ledger) Names() []string {
	return common.SortedKeys(l.known)
}

// Contains reports whether every name known to other is known to l.
func (l Ledger) Contains(other Ledger) bool {
	for name := range other.known {
		if !l.Knows(name) {
			return false
		}
	}

	return true
}

// Substitute returns a deep copy of v and the sorted names it references
// that the ledger does not know. Placeholders are kept verbatim either way:
// known names resolve at run time, unknown ones may still be supplied by the
// target tool.
func (l Ledger) Substitute(v any) (any, []string) {
	var undefined []string

	out := walk(v, func(s string) string {
		for _, name := range names(s) {
			if !l.Knows(name) {
				undefined = append(undefined, name)
			}
		}

		return s
	})

	undefined = slice.Unique(undefined)
	slices.Sort(undefined)

	return out, undefined
}

// References returns every variable name referenced anywhere in values, in
// order of first appearance.
func References(values ...any) []string {
	var found []string

	for _, v := range values {
		walk(v, func(s string) string {
			found = append(found, names(s)...)

			return s
		})
	}

	return slice.Unique(found)
}

// Refers reports whether any of values references name.
func Refers(name string, values ...any) bool {
	return slices.Contains(References(values...), name)
}

func names(s string) []string {
	matches := referencePattern.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))

	for _, m := range matches {
		out = append(out, m[1])
	}

	return out
}

// walk copies v, passing every string leaf through fn.
func walk(v any, fn func(string) string) any {
	switch t := v.(type) {
	case string:
		return fn(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for _, k := range common.SortedKeys(t) {
			out[k] = walk(t[k], fn)
		}

		return out
	case map[any]any:
		return walk(common.StringKeys(t), fn)
	case map[string]string:
		out := make(map[string]string, len(t))
		for _, k := range common.SortedKeys(t) {
			out[k] = fn(t[k])
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = walk(item, fn)
		}

		return out
	case []string:
		out := make([]string, len(t))
		for i, item := range t {
			out[i] = fn(item)
		}

		return out
	default:
		return v
	}
}
