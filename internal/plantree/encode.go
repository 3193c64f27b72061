package plantree

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

type nodeDTO struct {
	ID         string     `json:"id,omitempty"`
	Kind       string     `json:"kind"`
	Name       string     `json:"name"`
	Properties []propDTO  `json:"properties"`
	Children   []*nodeDTO `json:"children"`
}

type propDTO struct {
	Name  string   `json:"name"`
	Value valueDTO `json:"value"`
}

type valueDTO struct {
	Kind   string     `json:"kind"`
	String *string    `json:"string,omitempty"`
	Bool   *bool      `json:"bool,omitempty"`
	Int    *int64     `json:"int,omitempty"`
	Object []propDTO  `json:"object,omitempty"`
	List   []valueDTO `json:"list,omitempty"`
}

func toNodeDTO(n *Node) *nodeDTO {
	out := &nodeDTO{
		ID:         n.ID,
		Kind:       n.Kind.String(),
		Name:       n.Name,
		Properties: toPropDTOs(n.Properties),
		Children:   make([]*nodeDTO, 0, len(n.Children)),
	}

	for _, c := range n.Children {
		out.Children = append(out.Children, toNodeDTO(c))
	}

	return out
}

func toPropDTOs(props []Property) []propDTO {
	out := make([]propDTO, 0, len(props))
	for _, p := range props {
		out = append(out, propDTO{Name: p.Name, Value: toValueDTO(p.Value)})
	}

	return out
}

func toValueDTO(v Value) valueDTO {
	out := valueDTO{Kind: v.kind.String()}

	switch v.kind {
	case KindString:
		s := v.str
		out.String = &s
	case KindBool:
		b := v.b
		out.Bool = &b
	case KindInt:
		i := v.i
		out.Int = &i
	case KindObject:
		out.Object = toPropDTOs(v.obj)
	case KindList:
		out.List = make([]valueDTO, 0, len(v.list))
		for _, item := range v.list {
			out.List = append(out.List, toValueDTO(item))
		}
	}

	return out
}

// Encode renders the tree as indented JSON with every property kind tagged,
// so a serializer in any language can rebuild it without guessing types.
func Encode(t *Tree) ([]byte, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("encode plan tree: no root")
	}

	data, err := sonic.ConfigStd.MarshalIndent(toNodeDTO(t.Root), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode plan tree: %w", err)
	}

	return data, nil
}

// Outline renders the tree as an indented, human-readable listing.
func Outline(t *Tree) string {
	if t == nil || t.Root == nil {
		return ""
	}

	var b strings.Builder

	t.Root.Walk(func(n *Node, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Kind.String())

		if n.Name != "" {
			fmt.Fprintf(&b, " %q", n.Name)
		}

		for _, p := range n.Properties {
			if p.Value.kind == KindObject || p.Value.kind == KindList {
				fmt.Fprintf(&b, " %s=%s", p.Name, compact(p.Value))

				continue
			}

			fmt.Fprintf(&b, " %s=%s", p.Name, p.Value.Text())
		}

		b.WriteString("\n")

		return true
	})

	return b.String()
}

func compact(v Value) string {
	switch v.kind {
	case KindObject:
		parts := make([]string, 0, len(v.obj))
		for _, p := range v.obj {
			parts = append(parts, p.Name+":"+compact(p.Value))
		}

		return "{" + strings.Join(parts, ",") + "}"
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			parts = append(parts, compact(item))
		}

		return "[" + strings.Join(parts, ",") + "]"
	default:
		return v.Text()
	}
}
