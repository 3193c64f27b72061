package fieldindex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ohler55/ojg/jp"
)

// Segment is one step of an extraction path: a named member or "every item".
type Segment struct {
	Name     string
	Wildcard bool
}

// Path is a schema-level extraction path from the response root.
type Path []Segment

// Child returns a copy of p extended by the named member.
func (p Path) Child(name string) Path {
	return p.with(Segment{Name: name})
}

// Items returns a copy of p extended by an array wildcard.
func (p Path) Items() Path {
	return p.with(Segment{Wildcard: true})
}

func (p Path) with(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)

	return append(out, seg)
}

// Depth returns the number of segments.
func (p Path) Depth() int {
	return len(p)
}

// Leaf returns the last member name, or "" for the root or a trailing wildcard.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1].Name
}

// Parent returns the member name enclosing the leaf, skipping wildcards,
// or "" when the leaf sits directly under the root.
func (p Path) Parent() string {
	for i := len(p) - 2; i >= 0; i-- {
		if !p[i].Wildcard {
			return p[i].Name
		}
	}

	return ""
}

// HasWildcard reports whether the path crosses an array.
func (p Path) HasWildcard() bool {
	for _, seg := range p {
		if seg.Wildcard {
			return true
		}
	}

	return false
}

// JSONPath renders the path, e.g. "$.items[*].id".
func (p Path) JSONPath() string {
	var b strings.Builder

	b.WriteByte('$')

	for _, seg := range p {
		switch {
		case seg.Wildcard:
			b.WriteString("[*]")
		case isPlainName(seg.Name):
			b.WriteByte('.')
			b.WriteString(seg.Name)
		default:
			b.WriteString("['")
			b.WriteString(strings.ReplaceAll(seg.Name, "'", `\'`))
			b.WriteString("']")
		}
	}

	return b.String()
}

// String implements fmt.Stringer.
func (p Path) String() string {
	return p.JSONPath()
}

func isPlainName(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}

		return false
	}

	return true
}

// Validate checks that expr is a syntactically valid JSONPath expression.
func Validate(expr string) error {
	if _, err := jp.ParseString(expr); err != nil {
		return fmt.Errorf("invalid JSONPath %q: %w", expr, err)
	}

	if !strings.HasPrefix(strings.TrimSpace(expr), "$") {
		return fmt.Errorf("invalid JSONPath %q: must start at the root ($)", expr)
	}

	return nil
}

// ParseJSONPath converts a simple JSONPath expression into a Path.
// Array indices are folded into wildcards since the index is schema level.
// Filters, slices, unions and descent are rejected.
func ParseJSONPath(expr string) (Path, error) {
	if err := Validate(expr); err != nil {
		return nil, err
	}

	parsed, err := jp.ParseString(expr)
	if err != nil {
		return nil, err
	}

	var out Path

	for _, frag := range parsed {
		switch f := frag.(type) {
		case jp.Root, jp.Bracket:
		case jp.Child:
			out = append(out, Segment{Name: string(f)})
		case jp.Wildcard, jp.Nth:
			out = append(out, Segment{Wildcard: true})
		default:
			return nil, fmt.Errorf("unsupported JSONPath fragment %q in %q", jp.Expr{frag}.String(), expr)
		}
	}

	return out, nil
}

// FromDotted builds a path from a dotted field reference such as
// "user.id" or "items.0.id". Numeric segments become wildcards.
func FromDotted(ref string) Path {
	var out Path

	for _, part := range strings.Split(ref, ".") {
		if part == "" {
			continue
		}

		if _, err := strconv.Atoi(part); err == nil {
			out = append(out, Segment{Wildcard: true})

			continue
		}

		out = append(out, Segment{Name: part})
	}

	return out
}
