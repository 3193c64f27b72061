package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cardinality selects which match of an extraction path is stored.
// The zero value selects the first match.
type Cardinality int

const (
	// MatchFirst stores the first match.
	MatchFirst Cardinality = 0
	// MatchAll stores every match as name_1..name_N.
	MatchAll Cardinality = -1
)

// MatchNth selects the n-th match (1-based).
func MatchNth(n int) Cardinality {
	if n <= 1 {
		return MatchFirst
	}

	return Cardinality(n)
}

// Number returns the match number used by extractors: 1 for the first
// match, -1 for all matches, n for the n-th.
func (c Cardinality) Number() int {
	if c == MatchFirst {
		return 1
	}

	return int(c)
}

// String returns the YAML spelling.
func (c Cardinality) String() string {
	switch {
	case c == MatchFirst:
		return "first"
	case c == MatchAll:
		return "all"
	default:
		return strconv.Itoa(int(c))
	}
}

// ParseCardinality parses "first", "all" or a positive number.
func ParseCardinality(s string) (Cardinality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return MatchFirst, nil
	case "all":
		return MatchAll, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return MatchFirst, fmt.Errorf("invalid match %q: expected first, all or a positive number", s)
	}

	return MatchNth(n), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Cardinality) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: match must be a scalar", value.Line)
	}

	parsed, err := ParseCardinality(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	*c = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Cardinality) MarshalYAML() (any, error) {
	if c > 1 {
		return int(c), nil
	}

	return c.String(), nil
}
