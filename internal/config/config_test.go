package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scenario-planner/internal/contract"
	"scenario-planner/internal/plan"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, contract.DefaultMaxDepth, cfg.Schema.MaxDepth)
	assert.Equal(t, []string{"200", "201", "default"}, cfg.Schema.StatusPreference)
	assert.InDelta(t, 0.8, cfg.Correlation.LowConfidence, 1e-9)
	assert.Equal(t, 3, cfg.Correlation.MaxSuggestions)
	assert.Equal(t, plan.DefaultExtractorDefault, cfg.Plan.ExtractorDefault)
	assert.Equal(t, plan.DefaultBaseURL, cfg.Plan.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		check   func(t *testing.T, cfg Config)
		wantErr string
	}{
		{
			name: "empty keeps defaults",
			data: "",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name: "partial override",
			data: "schema:\n  max_depth: 4\nplan:\n  extractor_default: MISSING\ncontract:\n  pins:\n    GET /items: /api/v2/items\n",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 4, cfg.Schema.MaxDepth)
				assert.Equal(t, []string{"200", "201", "default"}, cfg.Schema.StatusPreference)
				assert.Equal(t, "MISSING", cfg.Plan.ExtractorDefault)
				assert.Equal(t, "/api/v2/items", cfg.Contract.Pins["GET /items"])
				assert.Equal(t, "MISSING", cfg.CompilerConfig().ExtractorDefault)
			},
		},
		{name: "unknown key", data: "schema:\n  depth: 3\n", wantErr: "field depth not found"},
		{name: "bad depth", data: "schema:\n  max_depth: 0\n", wantErr: "schema.max_depth"},
		{name: "bad confidence", data: "correlation:\n  low_confidence: 1.5\n", wantErr: "correlation.low_confidence"},
		{name: "negative confidence", data: "correlation:\n  low_confidence: -0.1\n", wantErr: "correlation.low_confidence"},
		{name: "bad suggestions", data: "correlation:\n  max_suggestions: -1\n", wantErr: "correlation.max_suggestions"},
		{name: "bad level", data: "log:\n  level: loud\n", wantErr: "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("correlation:\n  low_confidence: 0.75\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, cfg.Correlation.LowConfidence, 1e-9)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIndexOptionsApplyPins(t *testing.T) {
	cfg, err := Parse([]byte("contract:\n  pins:\n    GET /items: /api/v2/items\n"))
	require.NoError(t, err)

	idx := contract.NewIndex(&contract.Contract{Operations: []contract.Operation{
		{ID: "v1", Method: "GET", Path: "/api/v1/items"},
		{ID: "v2", Method: "GET", Path: "/api/v2/items"},
	}}, cfg.IndexOptions()...)

	op, err := idx.Resolve("GET /items")
	require.NoError(t, err)
	assert.Equal(t, "v2", op.ID)
}
