package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"scenario-planner/internal/common"
)

// Parse decodes a scenario from YAML (or JSON, which is valid YAML).
// Unknown keys are rejected so typos such as "captures" surface early.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to parse scenario: empty document")
		}

		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	applyDefaults(&sc)

	return &sc, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(sc *Scenario) {
	if sc.Version == "" {
		sc.Version = DefaultVersion
	}

	if sc.Settings.Threads == 0 {
		sc.Settings.Threads = 1
	}

	if sc.Variables != nil {
		sc.Variables, _ = common.StringKeys(sc.Variables).(map[string]any)
	}

	for i := range sc.Steps {
		step := &sc.Steps[i]

		if step.Params != nil {
			step.Params, _ = common.StringKeys(step.Params).(map[string]any)
		}

		step.Payload = common.StringKeys(step.Payload)

		if step.Assert != nil && step.Assert.Body != nil {
			step.Assert.Body, _ = common.StringKeys(step.Assert.Body).(map[string]any)
		}
	}
}

// Marshal serializes a scenario to YAML.
func Marshal(sc *Scenario) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(sc); err != nil {
		return nil, fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
