package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"scenario-planner/internal/contract"
	"scenario-planner/internal/scenario"
)

// LoadContract reads and converts an OpenAPI 3 or Swagger 2 file.
func LoadContract(path string) (*contract.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract file %s: %w", path, err)
	}

	c, err := ParseContract(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// ParseContract converts an OpenAPI 3 or Swagger 2 document.
func ParseContract(data []byte, f Format) (*contract.Contract, error) {
	if err := checkSyntax(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse contract: %w", err)
	}

	var doc document
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to parse contract: empty document")
		}

		return nil, fmt.Errorf("failed to parse contract: %w", err)
	}

	c, err := doc.toContract()
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract: %w", err)
	}

	return c, nil
}

// LoadScenario reads a scenario file in YAML or JSON.
func LoadScenario(path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	sc, err := ParseScenario(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sc, nil
}

// ParseScenario decodes a scenario document.
func ParseScenario(data []byte, f Format) (*scenario.Scenario, error) {
	if err := checkSyntax(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	return scenario.Parse(data)
}

// WriteScenario writes sc as YAML to path.
func WriteScenario(sc *scenario.Scenario, path string) error {
	data, err := scenario.Marshal(sc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario file %s: %w", path, err)
	}

	return nil
}
