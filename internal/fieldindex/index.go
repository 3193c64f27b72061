package fieldindex

import (
	"scenario-planner/internal/contract"
)

// Resolver dereferences schema references and supplies the recursion bound.
// *contract.Index satisfies it.
type Resolver interface {
	Deref(s *contract.Schema) *contract.Schema
	MaxDepth() int
}

// Entry is one place a field name occurs in the response.
type Entry struct {
	Field string
	Path  Path
	// Order is the breadth-first discovery position across the whole index.
	Order int
}

// Index maps field names to the paths reaching them. It is immutable after
// Build returns.
type Index struct {
	byName    map[string][]Entry
	byPath    map[string]Entry
	keys      []string
	entries   []Entry
	truncated bool
}

type queued struct {
	schema *contract.Schema
	path   Path
	depth  int
}

// Build walks root breadth-first and indexes every reachable property.
func Build(root *contract.Schema, r Resolver) *Index {
	idx := &Index{
		byName: make(map[string][]Entry),
		byPath: make(map[string]Entry),
	}

	maxDepth := r.MaxDepth()
	queue := []queued{{schema: root}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		s := r.Deref(cur.schema)
		if s == nil {
			continue
		}

		if cur.depth > maxDepth {
			idx.truncated = true

			continue
		}

		switch {
		case s.IsArray():
			queue = append(queue, queued{schema: s.Items, path: cur.path.Items(), depth: cur.depth + 1})
		case s.IsObject():
			for _, prop := range properties(s, r, 0, maxDepth) {
				p := cur.path.Child(prop.Name)
				idx.add(prop.Name, p)
				queue = append(queue, queued{schema: prop.Schema, path: p, depth: cur.depth + 1})
			}
		}
	}

	return idx
}

// properties returns s's own properties followed by those contributed through
// allOf, first declaration winning.
func properties(s *contract.Schema, r Resolver, depth, maxDepth int) contract.Properties {
	if len(s.AllOf) == 0 {
		return s.Properties
	}

	seen := make(map[string]bool)

	var out contract.Properties

	add := func(props contract.Properties) {
		for _, p := range props {
			if !seen[p.Name] {
				seen[p.Name] = true
				out = append(out, p)
			}
		}
	}

	add(s.Properties)

	if depth >= maxDepth {
		return out
	}

	for _, part := range s.AllOf {
		if resolved := r.Deref(part); resolved != nil {
			add(properties(resolved, r, depth+1, maxDepth))
		}
	}

	return out
}

func (x *Index) add(name string, p Path) {
	e := Entry{Field: name, Path: p, Order: len(x.entries)}

	if _, ok := x.byName[name]; !ok {
		x.keys = append(x.keys, name)
	}

	x.byName[name] = append(x.byName[name], e)
	x.byPath[p.JSONPath()] = e
	x.entries = append(x.entries, e)
}

// Lookup returns every entry for the exact field name, shallowest first.
func (x *Index) Lookup(name string) []Entry {
	return x.byName[name]
}

// Keys returns the distinct field names in first-discovery order.
func (x *Index) Keys() []string {
	return x.keys
}

// Entries returns every entry in discovery order.
func (x *Index) Entries() []Entry {
	return x.entries
}

// Len returns the number of indexed paths.
func (x *Index) Len() int {
	return len(x.entries)
}

// IsEmpty reports whether the schema exposed no fields.
func (x *Index) IsEmpty() bool {
	return len(x.entries) == 0
}

// Truncated reports whether the depth bound cut the walk short.
func (x *Index) Truncated() bool {
	return x.truncated
}

// At returns the entry whose path renders as p.
func (x *Index) At(p Path) (Entry, bool) {
	e, ok := x.byPath[p.JSONPath()]

	return e, ok
}
