package contract

import (
	"slices"
	"strings"

	"github.com/duke-git/lancet/v2/slice"

	"scenario-planner/internal/match"
)

// DefaultStatusPreference is tried after a step's declared status code.
var DefaultStatusPreference = []string{"200", "201", "default"}

// DefaultMaxDepth bounds $ref chains and schema nesting.
const DefaultMaxDepth = 10

// Index answers endpoint and schema questions about one contract.
// It is read-only after construction and safe for concurrent use.
type Index struct {
	contract   *Contract
	byID       map[string]*Operation
	byMethod   map[string][]*Operation
	pins       map[string]string
	preference []string
	maxDepth   int
}

// Option configures an Index.
type Option func(*Index)

// WithPins resolves otherwise ambiguous "METHOD /short" references to a full
// contract path. Keys use the "METHOD /path" form.
func WithPins(pins map[string]string) Option {
	return func(x *Index) {
		for ref, full := range pins {
			parsed, err := ParseEndpointRef(ref)
			if err != nil || parsed.IsOperationID() {
				continue
			}

			x.pins[parsed.String()] = NormalizePath(full)
		}
	}
}

// WithStatusPreference replaces DefaultStatusPreference.
func WithStatusPreference(codes []string) Option {
	return func(x *Index) {
		if len(codes) > 0 {
			x.preference = slices.Clone(codes)
		}
	}
}

// WithMaxDepth replaces DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(x *Index) {
		if depth > 0 {
			x.maxDepth = depth
		}
	}
}

// NewIndex builds an index over c. Operation methods and paths are
// normalized in place. When two operations share an id the first one wins.
func NewIndex(c *Contract, opts ...Option) *Index {
	x := &Index{
		contract:   c,
		byID:       make(map[string]*Operation),
		byMethod:   make(map[string][]*Operation),
		pins:       make(map[string]string),
		preference: slices.Clone(DefaultStatusPreference),
		maxDepth:   DefaultMaxDepth,
	}

	for i := range c.Operations {
		op := &c.Operations[i]
		op.Method = strings.ToUpper(op.Method)
		op.Path = NormalizePath(op.Path)

		if op.ID != "" {
			if _, dup := x.byID[op.ID]; !dup {
				x.byID[op.ID] = op
			}
		}

		x.byMethod[op.Method] = append(x.byMethod[op.Method], op)
	}

	for _, ops := range x.byMethod {
		slices.SortStableFunc(ops, func(a, b *Operation) int {
			return strings.Compare(a.Path, b.Path)
		})
	}

	for _, opt := range opts {
		opt(x)
	}

	return x
}

// Contract returns the indexed contract.
func (x *Index) Contract() *Contract {
	return x.contract
}

// MaxDepth returns the recursion bound used for schemas.
func (x *Index) MaxDepth() int {
	return x.maxDepth
}

// Operations returns every operation in contract order.
func (x *Index) Operations() []*Operation {
	out := make([]*Operation, 0, len(x.contract.Operations))
	for i := range x.contract.Operations {
		out = append(out, &x.contract.Operations[i])
	}

	return out
}

// Resolve finds the operation named by an endpoint reference.
func (x *Index) Resolve(raw string) (*Operation, error) {
	ref, err := ParseEndpointRef(raw)
	if err != nil {
		return nil, err
	}

	return x.ResolveRef(ref)
}

// ResolveRef finds the operation for an already parsed reference.
func (x *Index) ResolveRef(ref EndpointRef) (*Operation, error) {
	if ref.IsOperationID() {
		if op, ok := x.byID[ref.OperationID]; ok {
			return op, nil
		}

		return nil, &EndpointNotFoundError{
			Ref:         ref.String(),
			Suggestions: match.Suggest(ref.OperationID, x.operationIDs(), 3),
		}
	}

	candidates := x.byMethod[ref.Method]

	if full, ok := x.pins[ref.String()]; ok {
		for _, op := range candidates {
			if op.Path == full {
				return op, nil
			}
		}

		return nil, &EndpointNotFoundError{Ref: ref.Method + " " + full}
	}

	for _, op := range candidates {
		if op.Path == ref.Path {
			return op, nil
		}
	}

	short := segments(ref.Path)

	var matched []*Operation

	for _, op := range candidates {
		if hasSuffixSegments(segments(op.Path), short) {
			matched = append(matched, op)
		}
	}

	switch len(matched) {
	case 0:
		return nil, &EndpointNotFoundError{Ref: ref.String()}
	case 1:
		return matched[0], nil
	default:
		keys := make([]string, 0, len(matched))
		for _, op := range matched {
			keys = append(keys, op.Key())
		}

		return nil, &AmbiguousEndpointError{Ref: ref.String(), Candidates: keys}
	}
}

func (x *Index) operationIDs() []string {
	ids := make([]string, 0, len(x.byID))

	for i := range x.contract.Operations {
		if id := x.contract.Operations[i].ID; id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

// SchemaFor returns the dereferenced response schema of op and the status
// code it was found under. A declared 2xx status is tried first, then the
// configured preference, then any other 2xx code in sorted order. Declared
// error statuses are ignored: captures read success bodies.
// It returns nil when no success response carries a schema.
func (x *Index) SchemaFor(op *Operation, declared string) (*Schema, string) {
	for _, code := range x.statusOrder(op, declared) {
		raw, ok := op.Responses[code]
		if !ok || raw == nil {
			continue
		}

		if s := x.Deref(raw); s != nil {
			return s, code
		}
	}

	return nil, ""
}

func (x *Index) statusOrder(op *Operation, declared string) []string {
	order := make([]string, 0, len(x.preference)+len(op.Responses)+1)
	if isSuccess(declared) {
		order = append(order, declared)
	}

	order = append(order, x.preference...)

	for _, code := range op.StatusCodes() {
		if isSuccess(code) {
			order = append(order, code)
		}
	}

	return slice.Unique(order)
}

func isSuccess(status string) bool {
	return strings.HasPrefix(status, "2")
}

// Deref follows $ref links until a concrete schema is reached. It returns
// nil for dangling references or chains longer than the depth bound.
func (x *Index) Deref(s *Schema) *Schema {
	for range x.maxDepth + 1 {
		if s == nil || !s.IsRef() {
			return s
		}

		target, ok := x.contract.Lookup(s.Ref)
		if !ok {
			return nil
		}

		s = target
	}

	return nil
}
