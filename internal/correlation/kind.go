package correlation

//go:generate go tool stringer -type=MatchKind -linecomment -output=kind_string.go

// MatchKind tells which matcher produced a mapping.
type MatchKind int

const (
	Unresolved      MatchKind = iota // unresolved
	Explicit                         // explicit
	Exact                            // exact
	CaseInsensitive                  // case-insensitive
	IDSuffix                         // id-suffix
	Nested                           // nested
)

// Confidence assigned by each matcher.
const (
	ConfidenceExplicit        = 1.0
	ConfidenceExact           = 1.0
	ConfidenceCaseInsensitive = 0.9
	ConfidenceIDSuffix        = 0.8
	ConfidenceNested          = 0.7
)
