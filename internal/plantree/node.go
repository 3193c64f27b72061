package plantree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Node is one construct of the plan.
type Node struct {
	ID         string
	Kind       NodeKind
	Name       string
	Properties []Property
	// Children is never nil.
	Children []*Node
}

// NewNode returns a node with an empty child list.
func NewNode(kind NodeKind, name string) *Node {
	return &Node{Kind: kind, Name: name, Children: []*Node{}}
}

// Set stores a property, replacing an existing one with the same name.
func (n *Node) Set(name string, v Value) *Node {
	for i := range n.Properties {
		if n.Properties[i].Name == name {
			n.Properties[i].Value = v

			return n
		}
	}

	n.Properties = append(n.Properties, Prop(name, v))

	return n
}

// Get returns the named property.
func (n *Node) Get(name string) (Value, bool) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}

	return Value{}, false
}

// Text returns the named property rendered as text, or "".
func (n *Node) Text(name string) string {
	v, _ := n.Get(name)

	return v.Text()
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)

	return n
}

// Walk visits n and its descendants depth-first in order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}

	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Find returns every descendant (including n) of the given kind.
func (n *Node) Find(kind NodeKind) []*Node {
	var out []*Node

	n.Walk(func(node *Node, _ int) bool {
		if node.Kind == kind {
			out = append(out, node)
		}

		return true
	})

	return out
}

// Tree is a compiled plan.
type Tree struct {
	Root *Node
}

// Steps returns the step sequence, i.e. the children of the thread group.
func (t *Tree) Steps() []*Node {
	if t == nil || t.Root == nil {
		return nil
	}

	for _, c := range t.Root.Children {
		if c.Kind == ThreadGroup {
			return c.Children
		}
	}

	return nil
}

// Count returns how many nodes of kind the tree holds.
func (t *Tree) Count(kind NodeKind) int {
	if t == nil || t.Root == nil {
		return 0
	}

	return len(t.Root.Find(kind))
}

// AssignIDs gives every node a name-based UUID derived from seed and the
// node's position, so the same input always yields the same identifiers.
func (t *Tree) AssignIDs(seed string) {
	if t.Root == nil {
		return
	}

	assignIDs(t.Root, seed, "0")
}

func assignIDs(n *Node, seed, position string) {
	n.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed+"/"+position+"/"+n.Kind.String())).String()

	for i, c := range n.Children {
		assignIDs(c, seed, position+"."+strconv.Itoa(i))
	}
}

// Validate checks the structural rules serializers rely on: a test_plan
// root, non-nil child lists, and unique identifiers.
func (t *Tree) Validate() error {
	if t == nil || t.Root == nil {
		return errors.New("plan tree has no root")
	}

	if t.Root.Kind != TestPlan {
		return fmt.Errorf("plan root must be %s, got %s", TestPlan, t.Root.Kind)
	}

	var problems []string

	ids := make(map[string]bool)

	t.Root.Walk(func(n *Node, _ int) bool {
		if n.Children == nil {
			problems = append(problems, fmt.Sprintf("%s %q has no child list", n.Kind, n.Name))
		}

		if n.ID != "" {
			if ids[n.ID] {
				problems = append(problems, fmt.Sprintf("duplicate node id %s", n.ID))
			}

			ids[n.ID] = true
		}

		return true
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	return nil
}
