// Package config loads compiler settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"scenario-planner/internal/contract"
	"scenario-planner/internal/correlation"
	"scenario-planner/internal/logger"
	"scenario-planner/internal/plan"
)

// Config is the full set of compiler settings.
type Config struct {
	Schema      SchemaConfig      `yaml:"schema"`
	Correlation CorrelationConfig `yaml:"correlation"`
	Plan        PlanConfig        `yaml:"plan"`
	Contract    ContractConfig    `yaml:"contract"`
	Log         logger.Config     `yaml:"log"`
}

// SchemaConfig controls response schema handling.
type SchemaConfig struct {
	// MaxDepth bounds schema recursion.
	MaxDepth int `yaml:"max_depth"`
	// StatusPreference is tried after a step's declared status.
	StatusPreference []string `yaml:"status_preference"`
}

// CorrelationConfig controls capture resolution warnings.
type CorrelationConfig struct {
	LowConfidence  float64 `yaml:"low_confidence"`
	MaxSuggestions int     `yaml:"max_suggestions"`
}

// PlanConfig controls plan assembly.
type PlanConfig struct {
	ExtractorDefault string `yaml:"extractor_default"`
	BaseURL          string `yaml:"base_url"`
}

// ContractConfig controls endpoint resolution.
type ContractConfig struct {
	// Pins resolve ambiguous "METHOD /short" references to a full path.
	Pins map[string]string `yaml:"pins"`
}

// Default returns the built-in configuration.
func Default() Config {
	corr := correlation.DefaultConfig()
	p := plan.DefaultConfig()

	return Config{
		Schema: SchemaConfig{
			MaxDepth:         contract.DefaultMaxDepth,
			StatusPreference: append([]string{}, contract.DefaultStatusPreference...),
		},
		Correlation: CorrelationConfig{
			LowConfidence:  corr.LowConfidence,
			MaxSuggestions: corr.MaxSuggestions,
		},
		Plan: PlanConfig{
			ExtractorDefault: p.ExtractorDefault,
			BaseURL:          p.BaseURL,
		},
		Log: logger.DefaultConfig(),
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values; unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Schema.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("schema.max_depth must be at least 1, got %d", c.Schema.MaxDepth))
	}

	if lc := c.Correlation.LowConfidence; lc < 0 || lc > 1 {
		errs = append(errs, fmt.Errorf("correlation.low_confidence must be within [0, 1], got %g",
			c.Correlation.LowConfidence))
	}

	if c.Correlation.MaxSuggestions < 0 {
		errs = append(errs, fmt.Errorf("correlation.max_suggestions must not be negative, got %d",
			c.Correlation.MaxSuggestions))
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// IndexOptions returns the contract index options.
func (c *Config) IndexOptions() []contract.Option {
	return []contract.Option{
		contract.WithMaxDepth(c.Schema.MaxDepth),
		contract.WithStatusPreference(c.Schema.StatusPreference),
		contract.WithPins(c.Contract.Pins),
	}
}

// CompilerConfig returns the plan compiler configuration.
func (c *Config) CompilerConfig() plan.Config {
	return plan.Config{
		Correlation: correlation.Config{
			LowConfidence:  c.Correlation.LowConfidence,
			MaxSuggestions: c.Correlation.MaxSuggestions,
		},
		ExtractorDefault: c.Plan.ExtractorDefault,
		BaseURL:          c.Plan.BaseURL,
	}
}
