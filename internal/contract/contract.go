package contract

import (
	"strings"

	"scenario-planner/internal/common"
)

// Reference prefixes for reusable schemas (OpenAPI 3 and Swagger 2).
const (
	ComponentsPrefix  = "#/components/schemas/"
	DefinitionsPrefix = "#/definitions/"
)

// Contract is a decoded API description.
type Contract struct {
	Title      string
	Version    string
	BaseURL    string
	Operations []Operation
	// Schemas holds reusable schemas addressable by $ref.
	Schemas map[string]*Schema
}

// Operation is one endpoint of the contract.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	// Responses maps a status code ("200", "default") to its body schema.
	// A nil schema means the response has no JSON body.
	Responses map[string]*Schema
}

// Key returns the "METHOD /path" form of the operation.
func (o *Operation) Key() string {
	return o.Method + " " + o.Path
}

// String returns a display form, preferring the operation id.
func (o *Operation) String() string {
	if o.ID != "" {
		return o.ID + " (" + o.Key() + ")"
	}

	return o.Key()
}

// StatusCodes returns the declared response codes in sorted order.
func (o *Operation) StatusCodes() []string {
	return common.SortedKeys(o.Responses)
}

// Lookup resolves an internal $ref to its target schema.
func (c *Contract) Lookup(ref string) (*Schema, bool) {
	var name string

	switch {
	case strings.HasPrefix(ref, ComponentsPrefix):
		name = strings.TrimPrefix(ref, ComponentsPrefix)
	case strings.HasPrefix(ref, DefinitionsPrefix):
		name = strings.TrimPrefix(ref, DefinitionsPrefix)
	default:
		return nil, false
	}

	s, ok := c.Schemas[name]

	return s, ok && s != nil
}
