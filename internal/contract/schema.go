package contract

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// JSON Schema type names the index cares about.
const (
	TypeObject = "object"
	TypeArray  = "array"
)

// Schema is the JSON-Schema-like subset used for response bodies.
type Schema struct {
	Ref         string     `yaml:"$ref,omitempty"`
	Type        SchemaType `yaml:"type,omitempty"`
	Format      string     `yaml:"format,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Properties  Properties `yaml:"properties,omitempty"`
	Items       *Schema    `yaml:"items,omitempty"`
	AllOf       []*Schema  `yaml:"allOf,omitempty"`
	Required    []string   `yaml:"required,omitempty"`
}

// IsRef reports whether the schema only points somewhere else.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// IsObject reports whether the schema describes an object.
// A schema without a type but with properties is treated as an object.
func (s *Schema) IsObject() bool {
	if s == nil {
		return false
	}

	if s.Type.Has(TypeObject) {
		return true
	}

	return len(s.Type) == 0 && (len(s.Properties) > 0 || len(s.AllOf) > 0)
}

// IsArray reports whether the schema describes an array.
func (s *Schema) IsArray() bool {
	if s == nil {
		return false
	}

	return s.Type.Has(TypeArray) || (len(s.Type) == 0 && s.Items != nil)
}

// Property returns the named property schema, or nil.
func (s *Schema) Property(name string) *Schema {
	if s == nil {
		return nil
	}

	return s.Properties.Get(name)
}

// SchemaType is a JSON Schema "type" keyword. It accepts both the single
// string form and the list form (["object", "null"]).
type SchemaType []string

// Has reports whether t includes name.
func (t SchemaType) Has(name string) bool {
	return slices.Contains(t, name)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *SchemaType) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = SchemaType{value.Value}

		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return fmt.Errorf("schema type: %w", err)
		}

		*t = list

		return nil
	default:
		return errors.New("schema type: expected string or list of strings")
	}
}

// MarshalYAML implements yaml.Marshaler.
func (t SchemaType) MarshalYAML() (any, error) {
	if len(t) == 1 {
		return t[0], nil
	}

	return []string(t), nil
}

// Property is one named entry of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties keeps object properties in declaration order.
type Properties []Property

// Get returns the schema of the named property, or nil.
func (p Properties) Get(name string) *Schema {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema
		}
	}

	return nil
}

// Names returns property names in declaration order.
func (p Properties) Names() []string {
	names := make([]string, 0, len(p))
	for _, prop := range p {
		names = append(names, prop.Name)
	}

	return names
}

// UnmarshalYAML implements yaml.Unmarshaler, preserving key order.
func (p *Properties) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return errors.New("properties: expected mapping")
	}

	props := make(Properties, 0, len(value.Content)/2)

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]

		var s Schema
		if err := valNode.Decode(&s); err != nil {
			return fmt.Errorf("property %q: %w", keyNode.Value, err)
		}

		props = append(props, Property{Name: keyNode.Value, Schema: &s})
	}

	*p = props

	return nil
}

// MarshalYAML implements yaml.Marshaler, preserving key order.
func (p Properties) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, prop := range p {
		var val yaml.Node
		if err := val.Encode(prop.Schema); err != nil {
			return nil, err
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: prop.Name},
			&val,
		)
	}

	return node, nil
}
