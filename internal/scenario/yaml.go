package scenario

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

type explicitCapture struct {
	Path  string      `yaml:"path"`
	Match Cardinality `yaml:"match,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler for the three capture forms.
func (c *Capture) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*c = Capture{Variable: value.Value}

		return nil
	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: capture must have exactly one variable", value.Line)
		}

		name, body := value.Content[0].Value, value.Content[1]

		switch body.Kind {
		case yaml.ScalarNode:
			*c = Capture{Variable: name, Source: body.Value}

			return nil
		case yaml.MappingNode:
			var ex explicitCapture
			if err := body.Decode(&ex); err != nil {
				return fmt.Errorf("capture %q: %w", name, err)
			}

			*c = Capture{Variable: name, Path: ex.Path, Match: ex.Match}

			return nil
		default:
			return fmt.Errorf("line %d: capture %q: expected field name or {path, match}", value.Line, name)
		}
	default:
		return errors.New("capture: expected variable name or single-key mapping")
	}
}

// MarshalYAML implements yaml.Marshaler using the shortest form.
func (c Capture) MarshalYAML() (any, error) {
	switch {
	case c.Path != "":
		return map[string]explicitCapture{c.Variable: {Path: c.Path, Match: c.Match}}, nil
	case c.Source != "":
		return map[string]string{c.Variable: c.Source}, nil
	default:
		return c.Variable, nil
	}
}

type rawLoop struct {
	Count    *int    `yaml:"count,omitempty"`
	While    *string `yaml:"while,omitempty"`
	Max      *int    `yaml:"max,omitempty"`
	Interval int     `yaml:"interval,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler. An empty while condition falls
// back to DefaultWhileCondition and a missing max to DefaultMaxIterations.
func (l *Loop) UnmarshalYAML(value *yaml.Node) error {
	var raw rawLoop
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("loop: %w", err)
	}

	*l = Loop{Max: DefaultMaxIterations, Interval: raw.Interval}

	if raw.Count != nil {
		l.Count = *raw.Count
	}

	if raw.While != nil {
		l.While = *raw.While
		if l.While == "" {
			l.While = DefaultWhileCondition
		}
	}

	if raw.Max != nil {
		l.Max = *raw.Max
	}

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l Loop) MarshalYAML() (any, error) {
	raw := rawLoop{Interval: l.Interval}

	if l.IsWhile() {
		raw.While = &l.While
		if l.Max != DefaultMaxIterations {
			raw.Max = &l.Max
		}
	} else {
		raw.Count = &l.Count
	}

	return raw, nil
}
